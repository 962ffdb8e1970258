package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// AddMonthNote appends a month-level note. The month is created lazily: a
// client may leave a note before any document has been uploaded.
func (s *Service) AddMonthNote(ctx context.Context, clientID uuid.UUID, year, month, text string) (*domain.Note, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if text == "" {
		return nil, domain.NewValidationError("note", "required")
	}

	yk, mk, err := domain.NormalizeBucketKeys(year, month)
	if err != nil {
		return nil, err
	}

	note := s.newNote(text, actor)
	_, err = s.withClient(ctx, clientID, func(c *domain.Client) error {
		m := c.Documents.EnsureMonth(yk, mk)
		m.MonthNotes = append(m.MonthNotes, note)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add month note: %w", err)
	}

	s.logActivity(ctx, actor, "document.note.add",
		fmt.Sprintf("client %s month %s/%s month-level note", clientID, yk, mk))

	return &note, nil
}

// AddCategoryNote appends a note to an existing category. Unlike uploads,
// notes do not create structure: a missing month or ad-hoc category is
// domain.ErrNotFound.
func (s *Service) AddCategoryNote(ctx context.Context, input CategoryNoteInput) (*domain.Note, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	yk, mk, err := domain.NormalizeBucketKeys(input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	note := s.newNote(input.Text, actor)
	_, err = s.withClient(ctx, input.ClientID, func(c *domain.Client) error {
		m := c.Documents.Month(yk, mk)
		if m == nil {
			return fmt.Errorf("month %s/%s: %w", yk, mk, domain.ErrNotFound)
		}
		cat, err := resolveCategory(m, input.Category, input.CategoryName)
		if err != nil {
			return fmt.Errorf("category %s: %w", categoryLabel(input.Category, input.CategoryName), err)
		}
		cat.CategoryNotes = append(cat.CategoryNotes, note)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add category note: %w", err)
	}

	s.logActivity(ctx, actor, "document.note.add",
		fmt.Sprintf("client %s month %s/%s category %s note",
			input.ClientID, yk, mk, categoryLabel(input.Category, input.CategoryName)))

	return &note, nil
}

// AddFileNote appends a note to a file located by exact file name within the
// category. Duplicate file names are not disambiguated: first match wins.
func (s *Service) AddFileNote(ctx context.Context, input FileNoteInput) (*domain.Note, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	yk, mk, err := domain.NormalizeBucketKeys(input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	note := s.newNote(input.Text, actor)
	_, err = s.withClient(ctx, input.ClientID, func(c *domain.Client) error {
		m := c.Documents.Month(yk, mk)
		if m == nil {
			return fmt.Errorf("month %s/%s: %w", yk, mk, domain.ErrNotFound)
		}
		cat, err := resolveCategory(m, input.Category, input.CategoryName)
		if err != nil {
			return fmt.Errorf("category %s: %w", categoryLabel(input.Category, input.CategoryName), err)
		}
		f := cat.FileByName(input.FileName)
		if f == nil {
			return fmt.Errorf("file %s: %w", input.FileName, domain.ErrNotFound)
		}
		f.Notes = append(f.Notes, note)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add file note: %w", err)
	}

	s.logActivity(ctx, actor, "document.note.add",
		fmt.Sprintf("client %s month %s/%s file %s note", input.ClientID, yk, mk, input.FileName))

	return &note, nil
}
