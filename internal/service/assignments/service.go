package assignments

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

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	Save(ctx context.Context, e *domain.Employee) error
}

type removalRepo interface {
	Insert(ctx context.Context, rm domain.RemovedAssignment) error
	List(ctx context.Context, f domain.RemovalFilter) ([]domain.RemovedAssignment, error)
}

type activityRepo interface {
	Log(ctx context.Context, rec domain.ActivityRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the assignment ledger. The same assignment fact lives in
// two mirrors: the client's employeeAssignments and the employee's
// assignedClients. Both mirror writes run inside one transaction so the
// mirrors cannot drift on the write path; the employee side is authoritative
// when they nonetheless disagree.
type Service struct {
	log       *slog.Logger
	clients   clientRepo
	employees employeeRepo
	removals  removalRepo
	activity  activityRepo
	tx        txManager
	now       func() time.Time
}

// NewService creates a new Assignments service.
func NewService(
	logger *slog.Logger,
	clients clientRepo,
	employees employeeRepo,
	removals removalRepo,
	activity activityRepo,
	tx txManager,
) *Service {
	return &Service{
		log:       logger.With("service", "assignments"),
		clients:   clients,
		employees: employees,
		removals:  removals,
		activity:  activity,
		tx:        tx,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

const maxSaveRetries = 3

// runWithRetry executes fn in a transaction, retrying the whole transaction
// on a version conflict. fn re-reads everything it touches, so each attempt
// works on fresh state.
func (s *Service) runWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		err := s.tx.RunInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}
		lastErr = err
		s.log.Warn("version conflict in assignment tx, retrying", "attempt", attempt+1)
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

// warnDivergence logs a consistency warning when the two mirrors of an
// assignment disagree. The operation proceeds with the employee side.
func (s *Service) warnDivergence(k domain.AssignmentKey, detail string) {
	s.log.Warn("assignment mirrors diverged, employee side wins",
		"client_id", k.ClientID,
		"employee_id", k.EmployeeID,
		"year", k.Year,
		"month", k.Month,
		"task", string(k.Task),
		"detail", detail,
	)
}
