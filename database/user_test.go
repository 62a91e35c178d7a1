package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewInMemory()
	require.NoError(t, err)
	return db
}

func TestDB_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.Create(ctx, "alice", "hash1", true)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash1", user.PasswordHash)
	assert.True(t, user.IsAdmin)

	got, err := db.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	got, err = db.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = db.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = db.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDB_CreateWritesDefaultSettings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.Create(ctx, "alice", "hash1", false)
	require.NoError(t, err)

	settings, err := db.LoadSettings(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, 50, settings.MaxNumberOfLinks)
	assert.Equal(t, 3, settings.Columns)
	assert.Equal(t, "default", settings.CardStyle)
	assert.True(t, settings.LinkInNewTab)
}

func TestDB_ExistsByUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	exists, err := db.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = db.Create(ctx, "alice", "hash1", false)
	require.NoError(t, err)

	exists, err = db.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	// case-sensitive
	exists, err = db.ExistsByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDB_UniqueUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Create(ctx, "alice", "hash1", false)
	require.NoError(t, err)

	_, err = db.Create(ctx, "alice", "hash2", false)
	assert.Error(t, err)
}

func TestDB_Counts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	total, err := db.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = db.Create(ctx, "alice", "hash1", true)
	require.NoError(t, err)
	_, err = db.Create(ctx, "bob", "hash2", false)
	require.NoError(t, err)

	total, err = db.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	admins, err := db.CountAdmins(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, admins)
}

func TestDB_GetAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Create(ctx, "alice", "hash1", true)
	require.NoError(t, err)
	_, err = db.Create(ctx, "bob", "hash2", false)
	require.NoError(t, err)

	users, err := db.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "alice", users[0].Username)
	assert.True(t, users[0].IsAdmin)
	assert.Equal(t, "bob", users[1].Username)
	assert.False(t, users[1].IsAdmin)

	// the listing must not carry password hashes
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestDB_UpdatePasswordHash(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.Create(ctx, "alice", "hash1", false)
	require.NoError(t, err)

	require.NoError(t, db.UpdatePasswordHash(ctx, user.ID, "hash2"))

	got, err := db.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash2", got.PasswordHash)

	assert.ErrorIs(t, db.UpdatePasswordHash(ctx, 9999, "hash"), ErrUserNotFound)
}

func TestDB_UpdateIsAdmin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.Create(ctx, "alice", "hash1", false)
	require.NoError(t, err)

	require.NoError(t, db.UpdateIsAdmin(ctx, user.ID, true))

	got, err := db.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	assert.ErrorIs(t, db.UpdateIsAdmin(ctx, 9999, true), ErrUserNotFound)
}

func TestDB_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.Create(ctx, "alice", "hash1", false)
	require.NoError(t, err)

	require.NoError(t, db.Delete(ctx, user.ID))

	_, err = db.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// settings row goes with the user
	settings, err := db.LoadSettings(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, settings)

	assert.ErrorIs(t, db.Delete(ctx, user.ID), ErrUserNotFound)
}
