package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/quickchat/pkg/logger"
)

func TestNew_AppliesEmbeddedMigrationsOnce(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", "chat.db")

	db, err := New(path, Migrations(), logger.Discard())
	req.NoError(err)

	var tables int
	req.NoError(db.Conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('users','messages')",
	).Scan(&tables))
	req.Equal(2, tables)
	req.NoError(db.Close())

	// Reopening must not re-run 001_init.sql.
	db, err = New(path, Migrations(), logger.Discard())
	req.NoError(err)
	defer db.Close()

	var applied int
	req.NoError(db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	req.Equal(1, applied)
}

func TestNew_FailingMigration(t *testing.T) {
	migrations := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("CREATE TABLE ok (id TEXT); NOT VALID SQL;")},
	}

	req := require.New(t)
	path := filepath.Join(t.TempDir(), "bad.db")

	_, err := New(path, migrations, logger.Discard())
	req.ErrorContains(err, "001_bad.sql (statement 2)")

	t.Run("should leave neither the first table nor a record behind", func(t *testing.T) {
		req := require.New(t)
		db, err := New(path, fstest.MapFS{}, logger.Discard())
		req.NoError(err)
		defer db.Close()

		var tables int
		req.NoError(db.Conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'ok'",
		).Scan(&tables))
		req.Zero(tables)

		var applied int
		req.NoError(db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
		req.Zero(applied)
	})
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("INSERT INTO t VALUES ('a;b'); INSERT INTO t VALUES ('it''s');\n\n;")
	require.Equal(t, []string{
		"INSERT INTO t VALUES ('a;b')",
		"INSERT INTO t VALUES ('it''s')",
	}, got)
}
