package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/activity"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/adapter/postgres/testhelper"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

func TestRepo_LogAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := activity.New(pool)
	ctx := context.Background()

	actorID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, repo.Log(ctx, domain.ActivityRecord{
		ActorID:   actorID,
		ActorRole: domain.RoleAdmin,
		Action:    "assignment.create",
		Detail:    "2026/2 bookkeeping",
		CreatedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, repo.Log(ctx, domain.ActivityRecord{
		ActorID:   actorID,
		ActorRole: domain.RoleAdmin,
		Action:    "assignment.remove",
		Detail:    "2026/2 bookkeeping",
		CreatedAt: now,
	}))

	got, err := repo.List(ctx, domain.ActivityFilter{ActorID: actorID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "assignment.remove", got[0].Action, "newest first")
	assert.NotEqual(t, uuid.Nil, got[0].ID, "missing IDs are filled in")

	got, err = repo.List(ctx, domain.ActivityFilter{ActorID: actorID, Action: "assignment.create"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	since := now.Add(-30 * time.Second)
	got, err = repo.List(ctx, domain.ActivityFilter{ActorID: actorID, Since: &since})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "assignment.remove", got[0].Action)
}
