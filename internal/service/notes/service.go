package notes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type clientRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListActive(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error)
	Save(ctx context.Context, c *domain.Client) error
}

type activityRepo interface {
	Log(ctx context.Context, rec domain.ActivityRecord) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements note addressing and review-state tracking on top of the
// document tree.
type Service struct {
	log      *slog.Logger
	clients  clientRepo
	activity activityRepo
	pageSize int
	now      func() time.Time
}

// NewService creates a new Notes service. pageSize bounds how many clients a
// global scan loads per page.
func NewService(logger *slog.Logger, clients clientRepo, activity activityRepo, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Service{
		log:      logger.With("service", "notes"),
		clients:  clients,
		activity: activity,
		pageSize: pageSize,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// EncodePath renders a note locator in its external string form.
func (s *Service) EncodePath(p domain.NotePath) string {
	return domain.EncodeNotePath(p)
}

// DecodePath parses the external string form of a note locator.
func (s *Service) DecodePath(path string) (domain.NotePath, error) {
	return domain.DecodeNotePath(path)
}

const maxSaveRetries = 3

// errUnchanged signals that a mutate callback found nothing to change, so the
// save can be skipped entirely.
var errUnchanged = errors.New("unchanged")

// withClient runs one read-modify-write cycle against the client document,
// retrying on version conflicts. A mutate returning errUnchanged skips the
// save and reports success.
func (s *Service) withClient(ctx context.Context, clientID uuid.UUID, mutate func(c *domain.Client) error) error {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		c, err := s.clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}

		if err := mutate(c); err != nil {
			if errors.Is(err, errUnchanged) {
				return nil
			}
			return err
		}

		err = s.clients.Save(ctx, c)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}

		lastErr = err
		s.log.Warn("version conflict on save, retrying",
			"client_id", clientID, "attempt", attempt+1)
	}
	return lastErr
}

// logActivity appends one audit record, best-effort.
func (s *Service) logActivity(ctx context.Context, actor ctxutil.Actor, action, detail string) {
	err := s.activity.Log(ctx, domain.ActivityRecord{
		ActorID:   actor.ID,
		ActorRole: domain.ActorRole(actor.Role),
		Action:    action,
		Detail:    detail,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.log.Error("activity log append failed", "action", action, "error", err)
	}
}

// markUnviewed flips every unviewed note in the given buckets of the client's
// tree and returns how many were flipped.
func (s *Service) markUnviewed(c *domain.Client, buckets []domain.Bucket, actor ctxutil.Actor) int {
	marked := 0
	view := domain.NoteView{
		UserID:   actor.ID.String(),
		UserType: actor.Role,
		ViewedAt: s.now(),
	}
	for _, b := range buckets {
		m := c.Documents.Month(b.YearKey(), b.MonthKey())
		if m == nil {
			continue
		}
		m.ForEachNote(func(ref domain.NoteRef) {
			if ref.Note.IsViewedByAdmin {
				return
			}
			ref.Note.IsViewedByAdmin = true
			ref.Note.ViewedBy = append(ref.Note.ViewedBy, view)
			marked++
		})
	}
	return marked
}
