// Package removal implements the removed-assignment archive repository.
// Archive rows are immutable: they are inserted once per removal, listed
// with dynamic filters, and eventually swept by the retention job.
package removal

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// Repo provides removed-assignment archive persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new removal archive repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert appends one archive row. Rows are never updated afterwards.
func (r *Repo) Insert(ctx context.Context, rm domain.RemovedAssignment) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := r.sb.Insert("removed_assignments").
		Columns(
			"id", "client_id", "client_name", "employee_id", "employee_name",
			"year", "month", "task",
			"assigned_at", "assigned_by", "admin_name",
			"removed_at", "removed_by", "remover_name", "removal_reason",
			"was_accounting_done", "duration_days",
		).
		Values(
			rm.ID, rm.ClientID, rm.ClientName, rm.EmployeeID, rm.EmployeeName,
			rm.Year, rm.Month, rm.Task,
			rm.AssignedAt, rm.AssignedBy, rm.AdminName,
			rm.RemovedAt, rm.RemovedBy, rm.RemoverName, rm.RemovalReason,
			rm.WasAccountingDone, rm.DurationDays,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert removed_assignment: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "removed_assignment", rm.ID.String())
	}
	return nil
}

// List returns archive rows matching the filter, newest removals first.
func (r *Repo) List(ctx context.Context, f domain.RemovalFilter) ([]domain.RemovedAssignment, error) {
	b := r.sb.Select(
		"id", "client_id", "client_name", "employee_id", "employee_name",
		"year", "month", "task",
		"assigned_at", "assigned_by", "admin_name",
		"removed_at", "removed_by", "remover_name", "removal_reason",
		"was_accounting_done", "duration_days",
	).From("removed_assignments").OrderBy("removed_at DESC")

	if f.ClientID != uuid.Nil {
		b = b.Where(sq.Eq{"client_id": f.ClientID})
	}
	if f.EmployeeID != uuid.Nil {
		b = b.Where(sq.Eq{"employee_id": f.EmployeeID})
	}
	if f.Year != "" {
		b = b.Where(sq.Eq{"year": f.Year})
	}
	if f.Month != "" {
		b = b.Where(sq.Eq{"month": f.Month})
	}
	if f.Task != "" {
		b = b.Where(sq.Eq{"task": f.Task})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list removed_assignments: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var rows []domain.RemovedAssignment
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list removed_assignments: %w", err)
	}
	return rows, nil
}

// DeleteOlderThan removes archive rows whose removal predates the threshold.
// Used by the retention sweeper; returns the number of rows deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM removed_assignments WHERE removed_at < $1`, threshold)
	if err != nil {
		return 0, fmt.Errorf("delete removed_assignments: %w", err)
	}
	return tag.RowsAffected(), nil
}
