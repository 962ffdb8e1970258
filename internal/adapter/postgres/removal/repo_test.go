package removal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/removal"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/testhelper"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

func archiveRow(clientID, employeeID uuid.UUID, year, month string, task domain.TaskType, removedAt time.Time) domain.RemovedAssignment {
	a := domain.Assignment{
		ClientID:   clientID,
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Task:       task,
		AssignedAt: removedAt.Add(-72 * time.Hour),
		AssignedBy: uuid.New(),
		AdminName:  "Admin",
	}
	return domain.NewRemovedAssignment(a, removedAt, uuid.New(), "Admin", "reshuffle")
}

func TestRepo_InsertAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := removal.New(pool)
	ctx := context.Background()

	clientID := uuid.New()
	employeeID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	older := archiveRow(clientID, employeeID, "2026", "1", domain.TaskBookkeeping, now.Add(-time.Hour))
	newer := archiveRow(clientID, employeeID, "2026", "2", domain.TaskVATFiling, now)
	other := archiveRow(uuid.New(), uuid.New(), "2026", "1", domain.TaskBookkeeping, now)

	require.NoError(t, repo.Insert(ctx, older))
	require.NoError(t, repo.Insert(ctx, newer))
	require.NoError(t, repo.Insert(ctx, other))

	got, err := repo.List(ctx, domain.RemovalFilter{ClientID: clientID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID, "newest removal first")
	assert.Equal(t, older.ID, got[1].ID)
	assert.Equal(t, 3, got[0].DurationDays)
	assert.Equal(t, "reshuffle", got[0].RemovalReason)

	got, err = repo.List(ctx, domain.RemovalFilter{ClientID: clientID, Task: domain.TaskVATFiling})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, newer.ID, got[0].ID)

	got, err = repo.List(ctx, domain.RemovalFilter{ClientID: clientID, Month: "1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, older.ID, got[0].ID)
}

func TestRepo_DeleteOlderThan(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := removal.New(pool)
	ctx := context.Background()

	clientID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	stale := archiveRow(clientID, uuid.New(), "2023", "5", domain.TaskBookkeeping, now.Add(-900*24*time.Hour))
	fresh := archiveRow(clientID, uuid.New(), "2026", "5", domain.TaskBookkeeping, now)

	require.NoError(t, repo.Insert(ctx, stale))
	require.NoError(t, repo.Insert(ctx, fresh))

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-730*24*time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	got, err := repo.List(ctx, domain.RemovalFilter{ClientID: clientID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fresh.ID, got[0].ID)
}
