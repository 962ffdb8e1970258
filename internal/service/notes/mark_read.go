package notes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// MarkNoteRead resolves a positional note path and, if the note exists and is
// still unviewed, marks it viewed and appends the reviewer to its audit trail.
//
// A missing note and an already-viewed note both yield domain.ErrNotFound:
// the two cases are deliberately not distinguished, because a stale positional
// path cannot be told apart from a concurrent reviewer having won the race.
func (s *Service) MarkNoteRead(ctx context.Context, clientID uuid.UUID, path string) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	p, err := domain.DecodeNotePath(path)
	if err != nil {
		return err
	}

	err = s.withClient(ctx, clientID, func(c *domain.Client) error {
		note := c.Documents.ResolveNote(p)
		if note == nil || note.IsViewedByAdmin {
			return fmt.Errorf("note %s: %w", path, domain.ErrNotFound)
		}
		note.IsViewedByAdmin = true
		note.ViewedBy = append(note.ViewedBy, domain.NoteView{
			UserID:   actor.ID.String(),
			UserType: actor.Role,
			ViewedAt: s.now(),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("mark note read: %w", err)
	}

	s.logActivity(ctx, actor, "note.mark_read",
		fmt.Sprintf("client %s note %s", clientID, path))
	return nil
}
