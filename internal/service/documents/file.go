package documents

import (
	"context"
	"fmt"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// AddFile appends an uploaded file's metadata to the addressed category.
// The month is created lazily on first upload; an "other" category that does
// not exist yet is created under its given name.
func (s *Service) AddFile(ctx context.Context, input AddFileInput) (*domain.FileRecord, error) {
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

	file := domain.FileRecord{
		FileName:   input.FileName,
		URL:        input.URL,
		UploadedAt: s.now(),
		UploadedBy: actor.Name,
		FileSize:   input.FileSize,
		FileType:   input.FileType,
	}

	_, err = s.withClient(ctx, input.ClientID, func(c *domain.Client) error {
		m := c.Documents.EnsureMonth(yk, mk)

		var cat *domain.CategoryRecord
		if input.Category == domain.CategoryOther {
			cat = m.EnsureOtherCategory(input.CategoryName)
		} else {
			cat = m.MainCategory(input.Category)
		}

		cat.Files = append(cat.Files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add file: %w", err)
	}

	s.logActivity(ctx, actor, "document.file.add",
		fmt.Sprintf("client %s month %s/%s category %s file %s",
			input.ClientID, yk, mk, categoryLabel(input.Category, input.CategoryName), input.FileName))

	return &file, nil
}

func categoryLabel(cat domain.CategoryType, name string) string {
	if cat == domain.CategoryOther {
		return "other:" + name
	}
	return string(cat)
}
