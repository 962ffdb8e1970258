package assignments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// ListFilter narrows assignment listing. Zero-value fields mean "any".
type ListFilter struct {
	Year           string
	Month          string
	Task           domain.TaskType
	IncludeRemoved bool
}

func (f ListFilter) matches(a domain.Assignment) bool {
	if !f.IncludeRemoved && a.IsRemoved {
		return false
	}
	if f.Year != "" && a.Year != f.Year {
		return false
	}
	if f.Month != "" && a.Month != f.Month {
		return false
	}
	if f.Task != "" && a.Task != f.Task {
		return false
	}
	return true
}

// ListForEmployee returns the employee-side assignments matching the filter.
// Removed entries are excluded unless the filter asks for them.
func (s *Service) ListForEmployee(ctx context.Context, employeeID uuid.UUID, f ListFilter) ([]domain.Assignment, error) {
	e, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list assignments for employee: %w", err)
	}

	var out []domain.Assignment
	for _, a := range e.AssignedClients {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListForClient returns the client-side assignments matching the filter.
func (s *Service) ListForClient(ctx context.Context, clientID uuid.UUID, f ListFilter) ([]domain.Assignment, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list assignments for client: %w", err)
	}

	var out []domain.Assignment
	for _, a := range c.EmployeeAssignments {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}
