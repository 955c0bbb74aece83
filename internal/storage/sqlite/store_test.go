package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hongminglow/homeflow-be/internal/storage"
	"github.com/hongminglow/homeflow-be/internal/storage/storagetest"
)

func TestStoreSuite(t *testing.T) {
	suite.Run(t, &storagetest.StoreSuite{
		Open: func() (storage.Store, error) {
			return NewStore(context.Background(), ":memory:")
		},
	})
}

func TestNewStoreAcceptsSchemePrefix(t *testing.T) {
	store, err := NewStore(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	defer store.Close()

	user, err := store.UpsertUser(context.Background(), userFixture())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestDeletingUserCascades(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	user, err := store.UpsertUser(ctx, userFixture())
	require.NoError(t, err)
	_, err = store.CreateTodo(ctx, todoFixture(user.ID))
	require.NoError(t, err)

	_, err = store.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, user.ID)
	require.NoError(t, err)

	var count int
	require.NoError(t, store.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&count))
	assert.Zero(t, count)
}

func TestForeignKeysSurviveReconnect(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, "file:"+filepath.Join(t.TempDir(), "homeflow.db"))
	require.NoError(t, err)
	defer store.Close()

	// Without idle connections every statement runs on a freshly opened one.
	store.conn.SetMaxIdleConns(0)

	var enabled int
	require.NoError(t, store.conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&enabled))
	assert.Equal(t, 1, enabled)

	user, err := store.UpsertUser(ctx, userFixture())
	require.NoError(t, err)
	_, err = store.CreateTodo(ctx, todoFixture(user.ID))
	require.NoError(t, err)
	_, err = store.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, user.ID)
	require.NoError(t, err)

	var count int
	require.NoError(t, store.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&count))
	assert.Zero(t, count)
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", withForeignKeys(":memory:"))
	assert.Equal(t, "file:x.db?cache=shared&_pragma=foreign_keys(1)", withForeignKeys("file:x.db?cache=shared"))
}
