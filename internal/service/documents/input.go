package documents

import (
	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// AddFileInput holds the parameters for recording an uploaded file.
// The binary itself is stored externally; URL points at it.
type AddFileInput struct {
	ClientID     uuid.UUID
	Year         string
	Month        string
	Category     domain.CategoryType
	CategoryName string // required when Category == "other"
	FileName     string
	URL          string
	FileSize     int64
	FileType     string
}

// Validate checks all fields and collects all errors.
func (i *AddFileInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	if i.Category == domain.CategoryOther && i.CategoryName == "" {
		errs = append(errs, domain.FieldError{Field: "category_name", Message: "required for other categories"})
	}
	if i.FileName == "" {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "required"})
	}
	if i.URL == "" {
		errs = append(errs, domain.FieldError{Field: "url", Message: "required"})
	}
	if i.FileSize < 0 {
		errs = append(errs, domain.FieldError{Field: "file_size", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CategoryNoteInput holds the parameters for appending a category-level note.
type CategoryNoteInput struct {
	ClientID     uuid.UUID
	Year         string
	Month        string
	Category     domain.CategoryType
	CategoryName string // required when Category == "other"
	Text         string
}

// Validate checks all fields and collects all errors.
func (i *CategoryNoteInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	if i.Category == domain.CategoryOther && i.CategoryName == "" {
		errs = append(errs, domain.FieldError{Field: "category_name", Message: "required for other categories"})
	}
	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "note", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// FileNoteInput holds the parameters for appending a note to a specific file,
// located by exact file name within the category.
type FileNoteInput struct {
	ClientID     uuid.UUID
	Year         string
	Month        string
	Category     domain.CategoryType
	CategoryName string // required when Category == "other"
	FileName     string
	Text         string
}

// Validate checks all fields and collects all errors.
func (i *FileNoteInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	if i.Category == domain.CategoryOther && i.CategoryName == "" {
		errs = append(errs, domain.FieldError{Field: "category_name", Message: "required for other categories"})
	}
	if i.FileName == "" {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "required"})
	}
	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "note", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
