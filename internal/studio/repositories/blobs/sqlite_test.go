package blobs

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE blobs (
  id        TEXT PRIMARY KEY,
  mime_type TEXT NOT NULL DEFAULT '',
  data      BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestPut_InsertAndUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "id1", models.Payload{MimeType: "image/png", Data: []byte{1, 2}}))

	// upsert over the same id
	require.NoError(t, r.Put(ctx, "id1", models.Payload{MimeType: "image/jpeg", Data: []byte{3}}))

	p, err := r.Get(ctx, "id1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "image/jpeg", p.MimeType)
	assert.Equal(t, []byte{3}, p.Data)
}

func TestGet_AbsentIsNotAnError(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	p, err := r.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPutMany_AllVisibleAfterCommit(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	entries := map[string]models.Payload{
		"a": {MimeType: "image/png", Data: []byte("aa")},
		"b": {MimeType: "image/png", Data: []byte("bb")},
		"c": {MimeType: "image/webp", Data: []byte("cc")},
	}
	require.NoError(t, r.PutMany(ctx, entries))

	got, err := r.GetMany(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, []byte("bb"), got["b"].Data)
}

func TestGetMany_OmitsMissingIDs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "present", models.Payload{MimeType: "image/png", Data: []byte("x")}))

	got, err := r.GetMany(ctx, []string{"present", "gone", "also-gone"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	_, ok := got["present"]
	assert.True(t, ok)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "id1", models.Payload{MimeType: "image/png", Data: []byte("x")}))
	require.NoError(t, r.Delete(ctx, "id1"))
	require.NoError(t, r.Delete(ctx, "id1"), "deleting a missing id is not an error")

	p, err := r.Get(ctx, "id1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteMany_RemovesBatch(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.PutMany(ctx, map[string]models.Payload{
		"a": {Data: []byte("a")},
		"b": {Data: []byte("b")},
	}))
	require.NoError(t, r.DeleteMany(ctx, []string{"a", "b", "never-existed"}))

	got, err := r.GetMany(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngineFault_WrapsStorageFailure(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	err := r.Put(context.Background(), "id1", models.Payload{Data: []byte("x")})
	require.ErrorIs(t, err, common.ErrStorageFailure)

	// GetMany degrades: partial (here empty) map plus the error.
	got, err := r.GetMany(context.Background(), []string{"a"})
	require.ErrorIs(t, err, common.ErrStorageFailure)
	assert.NotNil(t, got)
}
