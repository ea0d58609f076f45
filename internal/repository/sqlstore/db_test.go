package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/Rrens/boardsync/internal/config"
	"github.com/Rrens/boardsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	pg := &DB{driver: config.DriverPostgres}
	assert.Equal(t,
		"UPDATE cards SET title = $1, updated_at = $2 WHERE id = $3 AND updated_at = $4",
		pg.rebind("UPDATE cards SET title = ?, updated_at = ? WHERE id = ? AND updated_at = ?"),
	)

	for _, driver := range []string{config.DriverMySQL, config.DriverSQLite} {
		db := &DB{driver: driver}
		assert.Equal(t, "SELECT 1 FROM lists WHERE id = ?", db.rebind("SELECT 1 FROM lists WHERE id = ?"))
	}
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("rollback on error", func(t *testing.T) {
		f := newFixture(t)
		f.user(t, "alice", "Alice")

		boom := errors.New("boom")
		err := f.db.WithTx(ctx, func(ctx context.Context) error {
			require.NoError(t, f.workspaces.Create(ctx, &domain.Workspace{
				ID: "ws1", UserID: "alice", Name: "Home", CreatedAt: testStamp, UpdatedAt: testStamp,
			}))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, f.count(t, "workspaces"))
	})

	t.Run("nested calls share one transaction", func(t *testing.T) {
		f := newFixture(t)
		f.seedTree(t)

		boom := errors.New("boom")
		err := f.db.WithTx(ctx, func(ctx context.Context) error {
			require.NoError(t, f.lists.Delete(ctx, "l1"))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, f.count(t, "lists"))
		assert.Equal(t, 3, f.count(t, "cards"))
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Migrate(false))
}
