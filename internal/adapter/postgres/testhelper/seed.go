package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedClient inserts an active client with an empty document tree and returns it.
func SeedClient(t *testing.T, pool *pgxpool.Pool) domain.Client {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	c := domain.NewClient("Test Client "+suffix, "client-"+suffix+"@example.com", "Testco "+suffix)

	row := pool.QueryRow(ctx,
		`INSERT INTO clients (id, name, email, company, is_active, documents, employee_assignments)
		 VALUES ($1, $2, $3, $4, true, '{}', '[]')
		 RETURNING version, created_at, updated_at`,
		c.ID, c.Name, c.Email, c.Company,
	)
	if err := row.Scan(&c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return *c
}

// SeedEmployee inserts an active employee with no assignments and returns it.
func SeedEmployee(t *testing.T, pool *pgxpool.Pool) domain.Employee {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	e := domain.NewEmployee("Test Employee "+suffix, "employee-"+suffix+"@example.com", domain.RoleEmployee)

	row := pool.QueryRow(ctx,
		`INSERT INTO employees (id, name, email, role, is_active, assigned_clients)
		 VALUES ($1, $2, $3, $4, true, '[]')
		 RETURNING version, created_at, updated_at`,
		e.ID, e.Name, e.Email, e.Role,
	)
	if err := row.Scan(&e.Version, &e.CreatedAt, &e.UpdatedAt); err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return *e
}
