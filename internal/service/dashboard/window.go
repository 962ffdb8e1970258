package dashboard

import (
	"time"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// ResolveWindow expands a time-filter selector into concrete instant bounds
// and buckets. Day-granularity filters (today, this_week) produce day-level
// buckets; the rest produce month buckets. A custom filter missing either
// bound falls back to this_month.
func (s *Service) ResolveWindow(filter domain.TimeFilter, customStart, customEnd *time.Time) (domain.Window, error) {
	if !filter.IsValid() {
		return domain.Window{}, domain.NewValidationError("timeFilter", "unknown filter "+string(filter))
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch filter {
	case domain.FilterToday:
		return domain.Window{
			Filter: filter,
			Start:  today,
			End:    today.AddDate(0, 0, 1),
			Months: []domain.Bucket{dayBucket(today)},
		}, nil

	case domain.FilterThisWeek:
		monday := today.AddDate(0, 0, -mondayOffset(today.Weekday()))
		var buckets []domain.Bucket
		for d := monday; !d.After(today); d = d.AddDate(0, 0, 1) {
			buckets = append(buckets, dayBucket(d))
		}
		return domain.Window{
			Filter: filter,
			Start:  monday,
			End:    today.AddDate(0, 0, 1),
			Months: buckets,
		}, nil

	case domain.FilterThisMonth:
		return s.monthsWindow(filter, now, 0, 0), nil

	case domain.FilterLastMonth:
		return s.monthsWindow(filter, now, -1, -1), nil

	case domain.FilterLast3Months:
		return s.monthsWindow(filter, now, -2, 0), nil

	case domain.FilterCustom:
		if customStart == nil || customEnd == nil {
			w := s.monthsWindow(domain.FilterThisMonth, now, 0, 0)
			w.Filter = domain.FilterCustom
			return w, nil
		}
		return s.customWindow(*customStart, *customEnd)
	}

	return domain.Window{}, domain.NewValidationError("timeFilter", "unknown filter "+string(filter))
}

// monthsWindow builds a month-granularity window spanning the months at
// offsets [fromOffset, toOffset] relative to now's month.
func (s *Service) monthsWindow(filter domain.TimeFilter, now time.Time, fromOffset, toOffset int) domain.Window {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, fromOffset, 0)
	end := first.AddDate(0, toOffset+1, 0)

	var buckets []domain.Bucket
	for m := start; m.Before(end); m = m.AddDate(0, 1, 0) {
		buckets = append(buckets, domain.Bucket{Year: m.Year(), Month: int(m.Month())})
	}
	return domain.Window{Filter: filter, Start: start, End: end, Months: buckets}
}

func (s *Service) customWindow(start, end time.Time) (domain.Window, error) {
	if end.Before(start) {
		return domain.Window{}, domain.NewValidationError("customEnd", "must not precede customStart")
	}

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var buckets []domain.Bucket
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		buckets = append(buckets, domain.Bucket{Year: m.Year(), Month: int(m.Month())})
		if s.cfg.MaxCustomMonths > 0 && len(buckets) > s.cfg.MaxCustomMonths {
			return domain.Window{}, domain.NewValidationError("customEnd", "window spans too many months")
		}
	}
	return domain.Window{
		Filter: domain.FilterCustom,
		Start:  start,
		End:    end,
		Months: buckets,
	}, nil
}

// PickCurrentBucket returns the bucket addressing today's year/month if the
// window contains one, else the first bucket.
func (s *Service) PickCurrentBucket(buckets []domain.Bucket) domain.Bucket {
	if len(buckets) == 0 {
		return domain.Bucket{}
	}
	now := s.now()
	current := domain.Bucket{Year: now.Year(), Month: int(now.Month())}
	for _, b := range buckets {
		if b.SameMonth(current) {
			return domain.Bucket{Year: b.Year, Month: b.Month}
		}
	}
	return buckets[0]
}

func dayBucket(d time.Time) domain.Bucket {
	return domain.Bucket{Year: d.Year(), Month: int(d.Month()), Day: d.Day()}
}

// mondayOffset returns how many days back the week's Monday lies.
func mondayOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}
