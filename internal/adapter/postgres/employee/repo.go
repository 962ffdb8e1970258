// Package employee implements the Employee repository using PostgreSQL.
// An employee row carries the employee-side assignment mirror as a
// whole-document JSONB column guarded by an optimistic version counter.
package employee

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// Repo provides employee persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new employee repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const employeeColumns = `id, name, email, role, is_active, assigned_clients, version, created_at, updated_at`

// GetByID returns an employee by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", id.String())
	}
	return e, nil
}

// GetByEmail returns an employee by unique email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", email)
	}
	return e, nil
}

// ListActive returns active employees ordered by id, starting strictly after
// afterID (uuid.Nil for the first page).
func (r *Repo) ListActive(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Employee, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees
		 WHERE is_active AND id > $1
		 ORDER BY id
		 LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}

// Create inserts a new employee. Returns domain.ErrAlreadyExists if the email
// is taken.
func (r *Repo) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	mirror, err := marshalMirror(e)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx,
		`INSERT INTO employees (id, name, email, role, is_active, assigned_clients)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+employeeColumns,
		e.ID, e.Name, e.Email, e.Role, e.IsActive, mirror,
	)
	created, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", e.Email)
	}
	return created, nil
}

// Save writes the employee-side assignment mirror as a whole document with an
// optimistic version check. A version miss on an existing row returns
// domain.ErrVersionConflict.
func (r *Repo) Save(ctx context.Context, e *domain.Employee) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	mirror, err := marshalMirror(e)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx,
		`UPDATE employees
		 SET assigned_clients = $1, version = version + 1, updated_at = now()
		 WHERE id = $2 AND version = $3`,
		mirror, e.ID, e.Version,
	)
	if err != nil {
		return postgres.MapError(err, "employee", e.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return r.saveMissError(ctx, e.ID)
	}

	e.Version++
	return nil
}

// SetActive flips the employee's active flag.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET is_active = $1, updated_at = now() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return postgres.MapError(err, "employee", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) saveMissError(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists); err != nil {
		return postgres.MapError(err, "employee", id.String())
	}
	if exists {
		return fmt.Errorf("employee %s: %w", id, domain.ErrVersionConflict)
	}
	return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
}

func marshalMirror(e *domain.Employee) ([]byte, error) {
	mirror := e.AssignedClients
	if mirror == nil {
		mirror = []domain.Assignment{}
	}
	b, err := json.Marshal(mirror)
	if err != nil {
		return nil, fmt.Errorf("employee %s: marshal assignments: %w", e.ID, err)
	}
	return b, nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		e      domain.Employee
		mirror []byte
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Role, &e.IsActive,
		&mirror, &e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(mirror, &e.AssignedClients); err != nil {
		return nil, fmt.Errorf("unmarshal assignments: %w", err)
	}
	return &e, nil
}
