package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/testhelper"
)

// clientExists checks whether a client row with the given ID exists.
func clientExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("clientExists query: %v", err)
	}
	return exists
}

func insertClient(ctx context.Context, q postgres.Querier, id uuid.UUID) error {
	_, err := q.Exec(ctx,
		`INSERT INTO clients (id, name, email) VALUES ($1, $2, $3)`,
		id, "Tx Test", "tx-"+id.String()[:8]+"@example.com",
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), id)
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	if !clientExists(t, pool, id) {
		t.Error("committed insert must be visible")
	}
}

func TestRunInTx_Rollback(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	boom := errors.New("boom")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), id); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunInTx = %v, want boom", err)
	}

	if clientExists(t, pool, id) {
		t.Error("rolled-back insert must not be visible")
	}
}

func TestRunInTx_PanicRollsBack(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected re-panic")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			if err := insertClient(ctx, postgres.QuerierFromCtx(ctx, pool), id); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if clientExists(t, pool, id) {
		t.Error("insert from panicking tx must not be visible")
	}
}
