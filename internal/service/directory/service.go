package directory

import (
	"context"
	"log/slog"
	"strings"
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
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	ListActive(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type activityRepo interface {
	Log(ctx context.Context, rec domain.ActivityRecord) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the thin directory edge: client and employee intake,
// activation, and enumeration. It exists because every other component needs
// "the active clients/employees".
type Service struct {
	log       *slog.Logger
	clients   clientRepo
	employees employeeRepo
	activity  activityRepo
	now       func() time.Time
}

// NewService creates a new Directory service.
func NewService(logger *slog.Logger, clients clientRepo, employees employeeRepo, activity activityRepo) *Service {
	return &Service{
		log:       logger.With("service", "directory"),
		clients:   clients,
		employees: employees,
		activity:  activity,
		now:       func() time.Time { return time.Now().UTC() },
	}
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

func validateIntake(name, email string) error {
	var errs []domain.FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be an email address"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
