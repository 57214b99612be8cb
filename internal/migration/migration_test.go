package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationsSortsAndParses(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_things.sql": {Data: []byte("CREATE TABLE things (id TEXT);")},
		"001_init.sql":       {Data: []byte("CREATE TABLE base (id TEXT);")},
		"README.md":          {Data: []byte("not a migration")},
	}

	runner := NewRunner(testDB(t), fsys)
	migrations, err := runner.ReadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	require.Equal(t, 1, migrations[0].Version)
	require.Equal(t, "init", migrations[0].Name)
	require.Equal(t, 2, migrations[1].Version)
	require.Equal(t, "add_things", migrations[1].Name)
}

func TestReadMigrationsRejectsBadNames(t *testing.T) {
	runner := NewRunner(testDB(t), fstest.MapFS{
		"oops.sql": {Data: []byte("SELECT 1;")},
	})
	_, err := runner.ReadMigrations()
	require.ErrorContains(t, err, "invalid migration filename")

	runner = NewRunner(testDB(t), fstest.MapFS{
		"abc_init.sql": {Data: []byte("SELECT 1;")},
	})
	_, err = runner.ReadMigrations()
	require.ErrorContains(t, err, "invalid version number")
}

func TestApplyIsIncremental(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE base (id TEXT);")},
	}

	runner := NewRunner(db, fsys)
	applied, err := runner.Apply()
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	version, err := runner.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, 1, version)

	// A second apply is a no-op.
	applied, err = runner.Apply()
	require.NoError(t, err)
	require.Equal(t, 0, applied)

	// A new migration is picked up from where we left off.
	fsys["002_add_things.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE things (id TEXT);")}
	applied, err = NewRunner(db, fsys).Apply()
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	require.NoError(t, NewRunner(db, fsys).ValidateVersion())
}

func TestValidateVersion(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE base (id TEXT);")},
	}

	// Fresh database is behind.
	err := NewRunner(db, fsys).ValidateVersion()
	require.ErrorContains(t, err, "run 'cotask migrate'")

	_, err = NewRunner(db, fsys).Apply()
	require.NoError(t, err)
	require.NoError(t, NewRunner(db, fsys).ValidateVersion())

	// A database from a newer binary is rejected.
	err = NewRunner(db, fstest.MapFS{}).ValidateVersion()
	require.ErrorContains(t, err, "newer than supported")
}
