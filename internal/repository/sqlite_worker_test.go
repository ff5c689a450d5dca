package repository

import (
	"context"
	"testing"

	"github.com/agencyops/timeclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkerRepo(database)
	ctx := context.Background()

	worker := testutil.NewTestWorker("Ada Lovelace")
	require.NoError(t, repo.Create(ctx, worker))

	fetched, err := repo.GetByID(ctx, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", fetched.DisplayName)
}

func TestWorkerRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkerRepo(database)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkerRepo_List_OrderedByName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkerRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorker("Zoe")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorker("Ada")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ada", list[0].DisplayName)
	assert.Equal(t, "Zoe", list[1].DisplayName)
}
