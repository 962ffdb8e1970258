package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// CreateEmployee enrolls a new staff member. A taken email yields
// domain.ErrAlreadyExists.
func (s *Service) CreateEmployee(ctx context.Context, name, email string, role domain.ActorRole) (*domain.Employee, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := validateIntake(name, email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "invalid value")
	}

	e := domain.NewEmployee(strings.TrimSpace(name), strings.ToLower(email), role)
	created, err := s.employees.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.logActivity(ctx, actor, "employee.create", fmt.Sprintf("employee %s (%s)", created.ID, created.Email))
	return created, nil
}

// GetEmployee returns one employee by ID.
func (s *Service) GetEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// ListEmployees returns a page of active employees ordered by id, starting
// strictly after afterID.
func (s *Service) ListEmployees(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Employee, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	page, err := s.employees.ListActive(ctx, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return page, nil
}

// SetEmployeeActive flips an employee's active flag.
func (s *Service) SetEmployeeActive(ctx context.Context, id uuid.UUID, active bool) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.employees.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set employee active: %w", err)
	}

	s.logActivity(ctx, actor, "employee.set_active", fmt.Sprintf("employee %s active=%t", id, active))
	return nil
}
