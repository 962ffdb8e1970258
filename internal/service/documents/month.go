package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// GetOrCreateMonth returns the month record at (year, month), creating an
// empty one (all categories empty, unlocked, accounting not done) if absent.
// Apart from an unresolvable client this never errors.
func (s *Service) GetOrCreateMonth(ctx context.Context, clientID uuid.UUID, year, month string) (*domain.MonthRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	yk, mk, err := domain.NormalizeBucketKeys(year, month)
	if err != nil {
		return nil, err
	}

	created := false
	c, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		created = c.Documents.Month(yk, mk) == nil
		c.Documents.EnsureMonth(yk, mk)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get or create month: %w", err)
	}

	if created {
		s.logActivity(ctx, actor, "document.month.create",
			fmt.Sprintf("client %s month %s/%s", clientID, yk, mk))
	}

	rec := *c.Documents.Month(yk, mk)
	return &rec, nil
}
