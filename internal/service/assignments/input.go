package assignments

import (
	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// CreateInput holds the parameters for creating an assignment.
type CreateInput struct {
	ClientID   uuid.UUID
	EmployeeID uuid.UUID
	Year       string
	Month      string
	Task       domain.TaskType
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if i.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "required"})
	}
	if !i.Task.IsValid() {
		errs = append(errs, domain.FieldError{Field: "task", Message: "must be one of the four canonical tasks"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RemoveInput holds the parameters for removing an assignment.
type RemoveInput struct {
	ClientID   uuid.UUID
	EmployeeID uuid.UUID
	Year       string
	Month      string
	Task       domain.TaskType
	Reason     string
}

// Validate checks all fields and collects all errors.
func (i *RemoveInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if i.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "required"})
	}
	if !i.Task.IsValid() {
		errs = append(errs, domain.FieldError{Field: "task", Message: "must be one of the four canonical tasks"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
