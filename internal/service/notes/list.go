package notes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// UnviewedCount is the unviewed-note tally for one client: the overall total
// plus a per-bucket-label breakdown.
type UnviewedCount struct {
	Total    int            `json:"total"`
	ByBucket map[string]int `json:"byBucket"`
}

// NoteEntry is one note in a flattened feed, carrying its computed positional
// address. The path is valid until the containing sequence changes.
type NoteEntry struct {
	Path     string          `json:"path"`
	Bucket   string          `json:"bucket"`
	Category string          `json:"category"`
	Type     domain.NoteType `json:"type"`
	Note     domain.Note     `json:"noteData"`
}

// CountUnviewed counts the client's notes not yet viewed by an admin across
// the given buckets, broken down by bucket label.
func (s *Service) CountUnviewed(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) (UnviewedCount, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return UnviewedCount{}, fmt.Errorf("count unviewed: %w", err)
	}

	out := UnviewedCount{ByBucket: map[string]int{}}
	for _, b := range buckets {
		m := c.Documents.Month(b.YearKey(), b.MonthKey())
		if m == nil {
			continue
		}
		n := m.CountUnviewed()
		if n > 0 {
			out.ByBucket[b.Label()] = n
			out.Total += n
		}
	}
	return out, nil
}

// ListNotes returns the client's notes across the given buckets as a flat
// feed, each with its computed positional address.
func (s *Service) ListNotes(ctx context.Context, clientID uuid.UUID, buckets []domain.Bucket) ([]NoteEntry, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	var out []NoteEntry
	for _, b := range buckets {
		m := c.Documents.Month(b.YearKey(), b.MonthKey())
		if m == nil {
			continue
		}
		m.ForEachNote(func(ref domain.NoteRef) {
			path := domain.EncodeNotePath(domain.NotePath{
				Year:      b.YearKey(),
				Month:     b.MonthKey(),
				Category:  ref.Category,
				Type:      ref.Type,
				NoteIndex: ref.Index,
				FileIndex: ref.FileIndex,
			})
			out = append(out, NoteEntry{
				Path:     path,
				Bucket:   b.Label(),
				Category: ref.Category,
				Type:     ref.Type,
				Note:     *ref.Note,
			})
		})
	}
	return out, nil
}
