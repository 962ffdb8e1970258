package assignments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// ToggleAccountingDone flips the accounting-done marker on every active
// assignment an employee holds for one client month. The employee mirror is
// the authoritative lookup: no matching entry there is domain.ErrNotFound and
// the client side stays untouched. On success the client mirror and, when the
// month record exists, MonthRecord.AccountingDone are synchronized best-effort
// afterward.
func (s *Service) ToggleAccountingDone(ctx context.Context, clientID, employeeID uuid.UUID, year, month string, done bool) ([]domain.Assignment, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	yk, mk, err := domain.NormalizeBucketKeys(year, month)
	if err != nil {
		return nil, err
	}

	at := s.now()
	var updated []domain.Assignment

	err = s.retryEmployeeSave(ctx, employeeID, func(e *domain.Employee) error {
		updated = updated[:0]
		for i := range e.AssignedClients {
			a := &e.AssignedClients[i]
			if a.IsRemoved || a.ClientID != clientID || a.Year != yk || a.Month != mk {
				continue
			}
			setAccountingDone(a, done, actor.Name, at)
			updated = append(updated, *a)
		}
		if len(updated) == 0 {
			return fmt.Errorf("assignment for client %s %s/%s: %w", clientID, yk, mk, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle accounting done: %w", err)
	}

	// The employee side has committed; the client mirror and the month record
	// follow best-effort. A failure here is a consistency warning, not a
	// failure of the toggle.
	s.syncClientSide(ctx, clientID, employeeID, yk, mk, done, actor.Name, at)

	s.logActivity(ctx, actor, "assignment.accounting_done",
		fmt.Sprintf("client %s employee %s %s/%s done=%t", clientID, employeeID, yk, mk, done))

	return updated, nil
}

// retryEmployeeSave runs one read-modify-write cycle against the employee
// document, retrying on version conflicts.
func (s *Service) retryEmployeeSave(ctx context.Context, employeeID uuid.UUID, mutate func(e *domain.Employee) error) error {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		e, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := mutate(e); err != nil {
			return err
		}

		err = s.employees.Save(ctx, e)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}
		lastErr = err
		s.log.Warn("version conflict on employee save, retrying",
			"employee_id", employeeID, "attempt", attempt+1)
	}
	return lastErr
}

// syncClientSide mirrors an accounting-done toggle into the client document:
// the client-side assignment entries and, if the month record exists, its
// AccountingDone flag.
func (s *Service) syncClientSide(ctx context.Context, clientID, employeeID uuid.UUID, yk, mk string, done bool, byName string, at time.Time) {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		c, err := s.clients.GetByID(ctx, clientID)
		if err != nil {
			lastErr = err
			break
		}

		touched := 0
		for i := range c.EmployeeAssignments {
			a := &c.EmployeeAssignments[i]
			if a.IsRemoved || a.EmployeeID != employeeID || a.Year != yk || a.Month != mk {
				continue
			}
			setAccountingDone(a, done, byName, at)
			touched++
		}
		if touched == 0 {
			s.warnDivergence(domain.AssignmentKey{ClientID: clientID, EmployeeID: employeeID, Year: yk, Month: mk},
				"no client-side twin during accounting toggle")
		}

		if m := c.Documents.Month(yk, mk); m != nil {
			m.AccountingDone = done
			if done {
				doneAt := at
				m.AccountingDoneAt = &doneAt
				m.AccountingDoneBy = byName
			} else {
				m.AccountingDoneAt = nil
				m.AccountingDoneBy = ""
			}
		}

		err = s.clients.Save(ctx, c)
		if err == nil {
			return
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			lastErr = err
			break
		}
		lastErr = err
	}

	s.log.Warn("client mirror sync failed after accounting toggle",
		"client_id", clientID, "employee_id", employeeID,
		"year", yk, "month", mk, "error", lastErr)
}

func setAccountingDone(a *domain.Assignment, done bool, byName string, at time.Time) {
	a.AccountingDone = done
	if done {
		doneAt := at
		a.AccountingDoneAt = &doneAt
		a.AccountingDoneBy = byName
	} else {
		a.AccountingDoneAt = nil
		a.AccountingDoneBy = ""
	}
}
