package assignments

import (
	"context"
	"fmt"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// Remove retires an active assignment: both mirrors flip IsRemoved and exactly
// one archive row snapshots the pre-removal state. Removal frees the key for
// a future Create. The employee mirror is the authoritative lookup; a missing
// client-side twin is logged and does not block the removal.
func (s *Service) Remove(ctx context.Context, input RemoveInput) (*domain.RemovedAssignment, error) {
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

	key := domain.AssignmentKey{
		ClientID:   input.ClientID,
		EmployeeID: input.EmployeeID,
		Year:       yk,
		Month:      mk,
		Task:       input.Task,
	}

	var archived domain.RemovedAssignment
	err = s.runWithRetry(ctx, func(txCtx context.Context) error {
		e, err := s.employees.GetByID(txCtx, input.EmployeeID)
		if err != nil {
			return fmt.Errorf("load employee: %w", err)
		}

		target := domain.FindActive(e.AssignedClients, key)
		if target == nil {
			return fmt.Errorf("assignment %s/%s %s: %w", yk, mk, input.Task, domain.ErrNotFound)
		}

		archived = domain.NewRemovedAssignment(*target, s.now(), actor.ID, actor.Name, input.Reason)
		target.IsRemoved = true

		c, err := s.clients.GetByID(txCtx, input.ClientID)
		if err != nil {
			return fmt.Errorf("load client: %w", err)
		}
		if twin := domain.FindActive(c.EmployeeAssignments, key); twin != nil {
			twin.IsRemoved = true
		} else {
			s.warnDivergence(key, "active on employee side only during remove")
		}

		if err := s.employees.Save(txCtx, e); err != nil {
			return fmt.Errorf("save employee mirror: %w", err)
		}
		if err := s.clients.Save(txCtx, c); err != nil {
			return fmt.Errorf("save client mirror: %w", err)
		}
		if err := s.removals.Insert(txCtx, archived); err != nil {
			return fmt.Errorf("archive removal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove assignment: %w", err)
	}

	s.logActivity(ctx, actor, "assignment.remove",
		fmt.Sprintf("client %s employee %s %s/%s %s reason=%q",
			input.ClientID, input.EmployeeID, yk, mk, input.Task, input.Reason))

	return &archived, nil
}

// ListRemoved returns archive rows matching the filter, newest removals first.
func (s *Service) ListRemoved(ctx context.Context, f domain.RemovalFilter) ([]domain.RemovedAssignment, error) {
	rows, err := s.removals.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list removed assignments: %w", err)
	}
	return rows, nil
}
