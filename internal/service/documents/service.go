package documents

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
	Save(ctx context.Context, c *domain.Client) error
}

type activityRepo interface {
	Log(ctx context.Context, rec domain.ActivityRecord) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the document tree business logic. Every mutation is one
// read-modify-write of the client's whole document bundle.
type Service struct {
	log      *slog.Logger
	clients  clientRepo
	activity activityRepo
	now      func() time.Time
}

// NewService creates a new Documents service.
func NewService(logger *slog.Logger, clients clientRepo, activity activityRepo) *Service {
	return &Service{
		log:      logger.With("service", "documents"),
		clients:  clients,
		activity: activity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// maxSaveRetries bounds how many times a read-modify-write is retried after a
// version conflict before giving up.
const maxSaveRetries = 3

// withClient runs one read-modify-write cycle against the client's document
// bundle, retrying the whole cycle on a version conflict. The mutate callback
// sees a freshly loaded client on every attempt.
func (s *Service) withClient(ctx context.Context, clientID uuid.UUID, mutate func(c *domain.Client) error) (*domain.Client, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		c, err := s.clients.GetByID(ctx, clientID)
		if err != nil {
			return nil, err
		}

		if err := mutate(c); err != nil {
			return nil, err
		}

		err = s.clients.Save(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}

		lastErr = err
		s.log.Warn("version conflict on save, retrying",
			"client_id", clientID, "attempt", attempt+1)
	}
	return nil, lastErr
}

// logActivity appends one audit record. Failures are logged and never
// propagate: a completed mutation is not rolled back over a lost audit entry.
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

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// resolveCategory finds the addressed category in an existing month record.
// Returns domain.ErrNotFound for an unknown main category or a missing
// ad-hoc category.
func resolveCategory(m *domain.MonthRecord, cat domain.CategoryType, name string) (*domain.CategoryRecord, error) {
	if cat.IsMain() {
		return m.MainCategory(cat), nil
	}
	if cat != domain.CategoryOther {
		return nil, domain.ErrNotFound
	}
	c := m.OtherCategoryByName(name)
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *Service) newNote(text string, actor ctxutil.Actor) domain.Note {
	return domain.Note{
		Note:    text,
		AddedBy: actor.Name,
		AddedAt: s.now(),
	}
}
