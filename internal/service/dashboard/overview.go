package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// Overview resolves the window once and fans the individual metrics out
// concurrently. All metrics are pure reads, so they need no coordination;
// the result is a point-in-time snapshot.
func (s *Service) Overview(ctx context.Context, filter domain.TimeFilter, customStart, customEnd *time.Time) (*Overview, error) {
	window, err := s.ResolveWindow(filter, customStart, customEnd)
	if err != nil {
		return nil, err
	}

	months := window.MonthBuckets()
	current := s.PickCurrentBucket(months)

	out := &Overview{Window: window, CurrentBucket: current}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.UnassignedClients, err = s.UnassignedClients(gCtx, current)
		return err
	})
	g.Go(func() error {
		var err error
		out.IdleEmployees, err = s.IdleEmployees(gCtx, current)
		return err
	})
	g.Go(func() error {
		var err error
		out.IncompleteTasks, err = s.IncompleteTasks(gCtx, current)
		return err
	})
	g.Go(func() error {
		var err error
		out.RecentNotes, err = s.RecentNotes(gCtx, months, 0)
		return err
	})
	g.Go(func() error {
		var err error
		out.UnviewedSummary, err = s.UnviewedSummary(gCtx, months)
		return err
	})
	g.Go(func() error {
		var err error
		out.UploadedButLocked, err = s.UploadedButLocked(gCtx, months)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard overview: %w", err)
	}
	return out, nil
}
