package notes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// MarkAllRead flips every unviewed note of one client across the given
// buckets and returns how many were marked. Idempotent: a second run marks
// zero and succeeds.
func (s *Service) MarkAllRead(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (int, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	marked := 0
	err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		marked = s.markUnviewed(c, buckets, actor)
		if marked == 0 {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	if marked > 0 {
		s.logActivity(ctx, actor, "note.mark_all_read",
			fmt.Sprintf("client %s marked %d notes", clientID, marked))
	}
	return marked, nil
}

// MarkAllReadGlobally runs MarkAllRead over every active client, one client
// per read-modify-write. The scan is not atomic: a failure mid-iteration
// leaves earlier clients marked, and the returned total counts them. Because
// marking is idempotent, rerunning after a partial failure finishes the job.
func (s *Service) MarkAllReadGlobally(ctx context.Context, buckets []domain.Bucket) (int, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	total := 0
	after := uuid.Nil
	for {
		page, err := s.clients.ListActive(ctx, after, s.pageSize)
		if err != nil {
			return total, fmt.Errorf("mark all read globally: list clients: %w", err)
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			clientID := page[i].ID
			after = clientID

			marked := 0
			err := s.withClient(ctx, clientID, func(c *domain.Client) error {
				marked = s.markUnviewed(c, buckets, actor)
				if marked == 0 {
					return errUnchanged
				}
				return nil
			})
			if err != nil {
				return total, fmt.Errorf("mark all read globally: client %s: %w", clientID, err)
			}
			total += marked
		}
	}

	if total > 0 {
		s.logActivity(ctx, actor, "note.mark_all_read_globally",
			fmt.Sprintf("marked %d notes", total))
	}
	return total, nil
}
