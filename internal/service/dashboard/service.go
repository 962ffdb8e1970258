package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/config"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type clientRepo interface {
	ListActive(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error)
}

type employeeRepo interface {
	ListActive(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Employee, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the dashboard aggregation queries. Everything here is a
// pure read: results are a point-in-time snapshot, not a consistent view
// across the whole scan.
type Service struct {
	log       *slog.Logger
	clients   clientRepo
	employees employeeRepo
	cfg       config.DashboardConfig
	now       func() time.Time
}

// NewService creates a new Dashboard service.
func NewService(logger *slog.Logger, clients clientRepo, employees employeeRepo, cfg config.DashboardConfig) *Service {
	return &Service{
		log:       logger.With("service", "dashboard"),
		clients:   clients,
		employees: employees,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// forEachActiveClient pages through all active clients, invoking fn per
// client. Stops on the first error.
func (s *Service) forEachActiveClient(ctx context.Context, fn func(c *domain.Client) error) error {
	after := uuid.Nil
	for {
		page, err := s.clients.ListActive(ctx, after, s.cfg.ClientPageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		for i := range page {
			after = page[i].ID
			if err := fn(&page[i]); err != nil {
				return err
			}
		}
	}
}

// forEachActiveEmployee pages through all active employees.
func (s *Service) forEachActiveEmployee(ctx context.Context, fn func(e *domain.Employee) error) error {
	after := uuid.Nil
	for {
		page, err := s.employees.ListActive(ctx, after, s.cfg.ClientPageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		for i := range page {
			after = page[i].ID
			if err := fn(&page[i]); err != nil {
				return err
			}
		}
	}
}

// activeInBucket reports whether the assignment is active and addresses the
// bucket's month.
func activeInBucket(a domain.Assignment, b domain.Bucket) bool {
	return !a.IsRemoved && a.Year == b.YearKey() && a.Month == b.MonthKey()
}
