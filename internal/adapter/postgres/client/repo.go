// Package client implements the Client repository using PostgreSQL.
// A client row carries two whole-document JSONB columns — the nested
// document tree and the client-side assignment mirror — guarded by an
// optimistic version counter checked and incremented on every save.
package client

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

// Repo provides client persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new client repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const clientColumns = `id, name, email, company, is_active, documents, employee_assignments, version, created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a client by primary key.
// Returns domain.ErrNotFound if the client does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, postgres.MapError(err, "client", id.String())
	}
	return c, nil
}

// GetByEmail returns a client by unique email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE email = $1`, email)
	c, err := scanClient(row)
	if err != nil {
		return nil, postgres.MapError(err, "client", email)
	}
	return c, nil
}

// ListActive returns active clients ordered by id, starting strictly after
// afterID (pass uuid.Nil for the first page). Keyset pagination keeps bulk
// iteration restartable: a caller can resume from the last id it processed.
func (r *Repo) ListActive(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Client, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+clientColumns+` FROM clients
		 WHERE is_active AND id > $1
		 ORDER BY id
		 LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	return clients, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new client. Returns domain.ErrAlreadyExists if the email
// is taken.
func (r *Repo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	docs, assignments, err := marshalDocs(c)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx,
		`INSERT INTO clients (id, name, email, company, is_active, documents, employee_assignments)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+clientColumns,
		c.ID, c.Name, c.Email, c.Company, c.IsActive, docs, assignments,
	)
	created, err := scanClient(row)
	if err != nil {
		return nil, postgres.MapError(err, "client", c.Email)
	}
	return created, nil
}

// Save writes the client's two whole documents — the document tree and the
// client-side assignment mirror — in one statement. The row's version must
// still equal c.Version; on success the stored and in-memory versions are
// incremented. A version miss on an existing row returns
// domain.ErrVersionConflict so the caller can re-read and retry.
func (r *Repo) Save(ctx context.Context, c *domain.Client) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	docs, assignments, err := marshalDocs(c)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx,
		`UPDATE clients
		 SET documents = $1, employee_assignments = $2, version = version + 1, updated_at = now()
		 WHERE id = $3 AND version = $4`,
		docs, assignments, c.ID, c.Version,
	)
	if err != nil {
		return postgres.MapError(err, "client", c.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return r.saveMissError(ctx, c.ID)
	}

	c.Version++
	return nil
}

// SetActive flips the client's active flag.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE clients SET is_active = $1, updated_at = now() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return postgres.MapError(err, "client", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// saveMissError distinguishes a stale version from a missing row.
func (r *Repo) saveMissError(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists); err != nil {
		return postgres.MapError(err, "client", id.String())
	}
	if exists {
		return fmt.Errorf("client %s: %w", id, domain.ErrVersionConflict)
	}
	return fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func marshalDocs(c *domain.Client) (docs, assignments []byte, err error) {
	tree := c.Documents
	if tree == nil {
		tree = domain.DocumentTree{}
	}
	docs, err = json.Marshal(tree)
	if err != nil {
		return nil, nil, fmt.Errorf("client %s: marshal documents: %w", c.ID, err)
	}

	mirror := c.EmployeeAssignments
	if mirror == nil {
		mirror = []domain.Assignment{}
	}
	assignments, err = json.Marshal(mirror)
	if err != nil {
		return nil, nil, fmt.Errorf("client %s: marshal assignments: %w", c.ID, err)
	}
	return docs, assignments, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		c           domain.Client
		docs        []byte
		assignments []byte
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Company, &c.IsActive,
		&docs, &assignments, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(docs, &c.Documents); err != nil {
		return nil, fmt.Errorf("unmarshal documents: %w", err)
	}
	if c.Documents == nil {
		c.Documents = domain.DocumentTree{}
	}
	if err := json.Unmarshal(assignments, &c.EmployeeAssignments); err != nil {
		return nil, fmt.Errorf("unmarshal assignments: %w", err)
	}
	return &c, nil
}
