package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// RecentNotes ranks clients by category- and file-level note volume across
// the window's buckets, descending, truncated to limit (the configured
// default when limit <= 0).
func (s *Service) RecentNotes(ctx context.Context, buckets []domain.Bucket, limit int) ([]ClientNoteCount, error) {
	if limit <= 0 {
		limit = s.cfg.RecentNotesLimit
	}

	var out []ClientNoteCount
	err := s.forEachActiveClient(ctx, func(c *domain.Client) error {
		count := 0
		for _, b := range buckets {
			if m := c.Documents.Month(b.YearKey(), b.MonthKey()); m != nil {
				count += m.TotalNotes()
			}
		}
		if count > 0 {
			out = append(out, ClientNoteCount{ClientID: c.ID, ClientName: c.Name, NoteCount: count})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recent notes: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].NoteCount > out[j].NoteCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UnviewedSummary ranks clients by unviewed-note totals across the window's
// buckets, descending, each with a per-bucket-label breakdown.
func (s *Service) UnviewedSummary(ctx context.Context, buckets []domain.Bucket) ([]ClientUnviewedSummary, error) {
	var out []ClientUnviewedSummary
	err := s.forEachActiveClient(ctx, func(c *domain.Client) error {
		row := ClientUnviewedSummary{ClientID: c.ID, ClientName: c.Name, ByBucket: map[string]int{}}
		for _, b := range buckets {
			m := c.Documents.Month(b.YearKey(), b.MonthKey())
			if m == nil {
				continue
			}
			if n := m.CountUnviewed(); n > 0 {
				row.ByBucket[b.Label()] = n
				row.Total += n
			}
		}
		if row.Total > 0 {
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unviewed summary: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

// UploadedButLocked returns, per bucket label, the clients whose month is
// locked yet contains at least one uploaded file.
func (s *Service) UploadedButLocked(ctx context.Context, buckets []domain.Bucket) (map[string][]LockedUpload, error) {
	out := map[string][]LockedUpload{}
	err := s.forEachActiveClient(ctx, func(c *domain.Client) error {
		for _, b := range buckets {
			m := c.Documents.Month(b.YearKey(), b.MonthKey())
			if m == nil || !m.IsLocked {
				continue
			}
			if files := m.TotalFiles(); files > 0 {
				label := b.Label()
				out[label] = append(out[label], LockedUpload{
					ClientID:   c.ID,
					ClientName: c.Name,
					TotalFiles: files,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("uploaded but locked: %w", err)
	}
	return out, nil
}
