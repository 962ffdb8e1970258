package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-backend/pkg/ctxutil"
)

// SetLock flips the month's lock flag. Locking does not block uploads at the
// storage layer; a locked month gaining files is a detectable anomaly, not a
// violation. The month is created lazily so an untouched month can be closed
// up front.
func (s *Service) SetLock(ctx context.Context, clientID uuid.UUID, year, month string, locked bool) (*domain.MonthRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	yk, mk, err := domain.NormalizeBucketKeys(year, month)
	if err != nil {
		return nil, err
	}

	c, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		m := c.Documents.EnsureMonth(yk, mk)
		m.IsLocked = locked
		if locked {
			now := s.now()
			m.LockedAt = &now
			m.LockedBy = actor.Name
		} else {
			m.LockedAt = nil
			m.LockedBy = ""
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set lock: %w", err)
	}

	s.logActivity(ctx, actor, "document.month.lock",
		fmt.Sprintf("client %s month %s/%s locked=%t", clientID, yk, mk, locked))

	rec := *c.Documents.Month(yk, mk)
	return &rec, nil
}

// SetCategoryLock flips one category's lock flag independently of the month.
// The month and, for ad-hoc categories, the category must already exist.
func (s *Service) SetCategoryLock(ctx context.Context, clientID uuid.UUID, year, month string, cat domain.CategoryType, categoryName string, locked bool) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if cat == domain.CategoryOther && categoryName == "" {
		return domain.NewValidationError("category_name", "required for other categories")
	}
	if !cat.IsValid() {
		return domain.NewValidationError("category", "invalid value")
	}
	yk, mk, err := domain.NormalizeBucketKeys(year, month)
	if err != nil {
		return err
	}

	_, err = s.withClient(ctx, clientID, func(c *domain.Client) error {
		m := c.Documents.Month(yk, mk)
		if m == nil {
			return fmt.Errorf("month %s/%s: %w", yk, mk, domain.ErrNotFound)
		}
		rec, err := resolveCategory(m, cat, categoryName)
		if err != nil {
			return fmt.Errorf("category %s: %w", categoryLabel(cat, categoryName), err)
		}
		rec.IsLocked = locked
		return nil
	})
	if err != nil {
		return fmt.Errorf("set category lock: %w", err)
	}

	s.logActivity(ctx, actor, "document.category.lock",
		fmt.Sprintf("client %s month %s/%s category %s locked=%t",
			clientID, yk, mk, categoryLabel(cat, categoryName), locked))

	return nil
}

// SetAccountingDone flips the month's accounting-done marker, independently of
// the lock state.
func (s *Service) SetAccountingDone(ctx context.Context, clientID uuid.UUID, year, month string, done bool) (*domain.MonthRecord, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	yk, mk, err := domain.NormalizeBucketKeys(year, month)
	if err != nil {
		return nil, err
	}

	c, err := s.withClient(ctx, clientID, func(c *domain.Client) error {
		m := c.Documents.EnsureMonth(yk, mk)
		setMonthAccountingDone(m, done, actor.Name, s.now())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set accounting done: %w", err)
	}

	s.logActivity(ctx, actor, "document.accounting.toggle",
		fmt.Sprintf("client %s month %s/%s done=%t", clientID, yk, mk, done))

	rec := *c.Documents.Month(yk, mk)
	return &rec, nil
}

func setMonthAccountingDone(m *domain.MonthRecord, done bool, byName string, at time.Time) {
	m.AccountingDone = done
	if done {
		m.AccountingDoneAt = &at
		m.AccountingDoneBy = byName
	} else {
		m.AccountingDoneAt = nil
		m.AccountingDoneBy = ""
	}
}
