package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/catalogseed/internal/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.CreateTables(context.Background()))
	return s
}

func countRows(t *testing.T, s *Store, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestOpen_DefaultPath(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, DefaultPath, s.Path())
	assert.FileExists(t, DefaultPath)
}

func TestCreateTables_Idempotent(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.CreateTables(context.Background()))

	assert.Equal(t, 2, countRows(t, s, `SELECT count(*) FROM sqlite_master WHERE type='table' AND name IN ('users','files')`))
}

func TestAddUser_InsertsExactPair(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddUser(ctx, models.User{Username: "alice", Password: "s3cret"}))

	var pass string
	require.NoError(t, s.db.QueryRow(`SELECT password FROM users WHERE username=?`, "alice").Scan(&pass))
	assert.Equal(t, "s3cret", pass)
	assert.Equal(t, 1, countRows(t, s, `SELECT count(*) FROM users`))
}

func TestAddUser_DuplicateKeepsFirst(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddUser(ctx, models.User{Username: "alice", Password: "first"}))
	err := s.AddUser(ctx, models.User{Username: "alice", Password: "second"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserExists)

	var pass string
	require.NoError(t, s.db.QueryRow(`SELECT password FROM users WHERE username=?`, "alice").Scan(&pass))
	assert.Equal(t, "first", pass)
	assert.Equal(t, 1, countRows(t, s, `SELECT count(*) FROM users WHERE username=?`, "alice"))
}

func TestAddFiles_BatchAndDuplicates(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	entries := []models.CatalogEntry{
		{Name: "track1", Path: "/music/track1.mp3"},
		{Name: "track2", Path: "/music/track2.mp3"},
	}
	n, err := s.AddFiles(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NotZero(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)

	n, err = s.AddFiles(ctx, []models.CatalogEntry{
		{Name: "track1", Path: "/music/track1.mp3"},
		{Name: "track2", Path: "/music/track2.mp3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, 4, countRows(t, s, `SELECT count(*) FROM files`))
	assert.Equal(t, 2, countRows(t, s, `SELECT count(*) FROM files WHERE name=? AND path=?`, "track1", "/music/track1.mp3"))
}

func TestAddFiles_Empty(t *testing.T) {
	s := setupStore(t)

	n, err := s.AddFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, countRows(t, s, `SELECT count(*) FROM files`))
}

func TestAddFiles_FailedInsertRollsBackBatch(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`CREATE TRIGGER reject_bad BEFORE INSERT ON files WHEN NEW.name='bad'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	n, err := s.AddFiles(ctx, []models.CatalogEntry{
		{Name: "a", Path: "a.mp3"},
		{Name: "bad", Path: "bad.mp3"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.mp3")
	assert.Zero(t, n)
	assert.Zero(t, countRows(t, s, `SELECT count(*) FROM files`))

	// the store stays usable after the rollback
	n, err = s.AddFiles(ctx, []models.CatalogEntry{{Name: "a", Path: "a.mp3"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClearAndDropTables(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddUser(ctx, models.User{Username: "bob", Password: "pw"}))
	_, err := s.AddFiles(ctx, []models.CatalogEntry{{Name: "x", Path: "x.mp3"}})
	require.NoError(t, err)

	require.NoError(t, s.ClearTables(ctx))
	assert.Zero(t, countRows(t, s, `SELECT count(*) FROM users`))
	assert.Zero(t, countRows(t, s, `SELECT count(*) FROM files`))

	require.NoError(t, s.DropTables(ctx))
	assert.Zero(t, countRows(t, s, `SELECT count(*) FROM sqlite_master WHERE type='table' AND name IN ('users','files')`))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
