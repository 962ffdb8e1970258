package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// UnassignedClients returns active clients whose current-bucket coverage of
// the four canonical tasks is incomplete, each with its missing tasks. A
// client with no assignments at all is missing all four.
func (s *Service) UnassignedClients(ctx context.Context, current domain.Bucket) ([]UnassignedClient, error) {
	var out []UnassignedClient
	err := s.forEachActiveClient(ctx, func(c *domain.Client) error {
		covered := map[domain.TaskType]bool{}
		for _, a := range c.EmployeeAssignments {
			if activeInBucket(a, current) {
				covered[a.Task] = true
			}
		}

		var missing []domain.TaskType
		for _, t := range domain.AllTaskTypes() {
			if !covered[t] {
				missing = append(missing, t)
			}
		}
		if len(missing) > 0 {
			out = append(out, UnassignedClient{
				ClientID:     c.ID,
				ClientName:   c.Name,
				MissingTasks: missing,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unassigned clients: %w", err)
	}
	return out, nil
}

// IdleEmployees returns active employees holding no active assignment in the
// current bucket.
func (s *Service) IdleEmployees(ctx context.Context, current domain.Bucket) ([]IdleEmployee, error) {
	var out []IdleEmployee
	err := s.forEachActiveEmployee(ctx, func(e *domain.Employee) error {
		for _, a := range e.AssignedClients {
			if activeInBucket(a, current) {
				return nil
			}
		}
		out = append(out, IdleEmployee{EmployeeID: e.ID, EmployeeName: e.Name})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("idle employees: %w", err)
	}
	return out, nil
}

// IncompleteTasks returns active clients with at least one active,
// not-yet-done assignment in the current bucket, with the pending tasks and
// their assignees.
func (s *Service) IncompleteTasks(ctx context.Context, current domain.Bucket) ([]IncompleteClient, error) {
	var out []IncompleteClient
	err := s.forEachActiveClient(ctx, func(c *domain.Client) error {
		var pending []PendingTask
		for _, a := range c.EmployeeAssignments {
			if activeInBucket(a, current) && !a.AccountingDone {
				pending = append(pending, PendingTask{Task: a.Task, EmployeeName: a.EmployeeName})
			}
		}
		if len(pending) > 0 {
			sort.Slice(pending, func(i, j int) bool { return pending[i].Task < pending[j].Task })
			out = append(out, IncompleteClient{
				ClientID:   c.ID,
				ClientName: c.Name,
				Pending:    pending,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("incomplete tasks: %w", err)
	}
	return out, nil
}
