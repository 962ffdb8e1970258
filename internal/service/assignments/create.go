package assignments

import (
	"context"
	"fmt"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// Create assigns a task to an employee for one client month. At most one
// active assignment may exist per (client, employee, year, month, task) key:
// a duplicate yields domain.ErrConflict. Both mirrors are appended inside one
// transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Assignment, error) {
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

	var created domain.Assignment
	err = s.runWithRetry(ctx, func(txCtx context.Context) error {
		e, err := s.employees.GetByID(txCtx, input.EmployeeID)
		if err != nil {
			return fmt.Errorf("load employee: %w", err)
		}
		c, err := s.clients.GetByID(txCtx, input.ClientID)
		if err != nil {
			return fmt.Errorf("load client: %w", err)
		}

		if domain.FindActive(e.AssignedClients, key) != nil {
			return fmt.Errorf("assignment %s/%s %s: %w", yk, mk, input.Task, domain.ErrConflict)
		}
		if domain.FindActive(c.EmployeeAssignments, key) != nil {
			// The client mirror holds an active record the employee mirror
			// does not know about.
			s.warnDivergence(key, "active on client side only, refusing duplicate")
			return fmt.Errorf("assignment %s/%s %s: %w", yk, mk, input.Task, domain.ErrConflict)
		}

		created = domain.Assignment{
			ClientID:     c.ID,
			ClientName:   c.Name,
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			Year:         yk,
			Month:        mk,
			Task:         input.Task,
			AssignedAt:   s.now(),
			AssignedBy:   actor.ID,
			AdminName:    actor.Name,
		}

		e.AssignedClients = append(e.AssignedClients, created)
		c.EmployeeAssignments = append(c.EmployeeAssignments, created)

		if err := s.employees.Save(txCtx, e); err != nil {
			return fmt.Errorf("save employee mirror: %w", err)
		}
		if err := s.clients.Save(txCtx, c); err != nil {
			return fmt.Errorf("save client mirror: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	s.logActivity(ctx, actor, "assignment.create",
		fmt.Sprintf("client %s employee %s %s/%s %s", input.ClientID, input.EmployeeID, yk, mk, input.Task))

	return &created, nil
}
