// Package activity implements the append-only activity log repository.
// Every mutating operation in the system emits one record here; writes are
// best-effort from the caller's point of view and never rolled back.
package activity

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new activity log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Log appends one activity record.
//
// Deliberately uses the pool, not the caller's transaction: an activity
// record for a completed mutation must survive even when written from a
// context whose transaction later rolls back, and a failed append must not
// poison the caller's transaction.
func (r *Repo) Log(ctx context.Context, rec domain.ActivityRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	sql, args, err := r.sb.Insert("activity_logs").
		Columns("id", "actor_id", "actor_role", "action", "detail", "created_at").
		Values(rec.ID, rec.ActorID, rec.ActorRole, rec.Action, rec.Detail, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert activity_log: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "activity_log", rec.ID.String())
	}
	return nil
}

// List returns activity records matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityRecord, error) {
	b := r.sb.Select("id", "actor_id", "actor_role", "action", "detail", "created_at").
		From("activity_logs").
		OrderBy("created_at DESC")

	if f.ActorID != uuid.Nil {
		b = b.Where(sq.Eq{"actor_id": f.ActorID})
	}
	if f.Action != "" {
		b = b.Where(sq.Eq{"action": f.Action})
	}
	if f.Since != nil {
		b = b.Where(sq.GtOrEq{"created_at": *f.Since})
	}
	if f.Until != nil {
		b = b.Where(sq.Lt{"created_at": *f.Until})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list activity_logs: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var rows []domain.ActivityRecord
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list activity_logs: %w", err)
	}
	return rows, nil
}
