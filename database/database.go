// Package database opens the SQLite store and applies schema migrations.
//
// Migrations are plain .sql files embedded into the binary (see embed.go),
// named NNN_description.sql and applied in file-name order. Each applied file
// is recorded in schema_migrations, so restarting the server only runs the
// files that are new since the last start. A file runs statement by
// statement inside one transaction: either the whole file is applied and
// recorded, or nothing is.
//
// The driver is modernc.org/sqlite (pure Go, no cgo), so the server builds
// as a static binary. Connection pragmas:
//
//   - foreign_keys(1): messages reference users; SQLite leaves this off
//     unless asked per connection
//   - journal_mode(WAL): conversation reads do not wait on message inserts
//   - busy_timeout(5000): concurrent writers wait up to 5s for the lock
//     instead of failing with SQLITE_BUSY
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver, pure Go
)

// DB wraps the connection pool.
type DB struct {
	Conn *sql.DB
	log  *slog.Logger
}

// TxQuerier is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// inside or outside a transaction.
type TxQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New opens (creating if needed) the database at dbPath and applies every
// pending migration found in migrationsFS.
func New(dbPath string, migrationsFS fs.FS, log *slog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{Conn: conn, log: log.With("component", "database")}

	if err := db.runMigrations(migrationsFS); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db.log.Info("connected and migrations applied", "path", dbPath)
	return db, nil
}

func (db *DB) Close() error {
	return db.Conn.Close()
}

// runMigrations executes the *.sql files of migrationsFS in lexical order
// (001_init.sql, 002_..., ...). Applied file names are recorded in
// schema_migrations so each file runs exactly once.
func (db *DB) runMigrations(migrationsFS fs.FS) error {
	if _, err := db.Conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	applied, err := db.appliedMigrations()
	if err != nil {
		return err
	}

	for _, file := range sqlFiles {
		if applied[file] {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		if err := db.applyMigration(file, string(content)); err != nil {
			return err
		}

		db.log.Info("migration applied", "file", file)
	}

	return nil
}

// applyMigration runs one file and records it in a single transaction.
func (db *DB) applyMigration(file, content string) error {
	tx, err := db.Conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", file, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for i, stmt := range splitStatements(content) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute migration %s (statement %d): %w", file, i+1, err)
		}
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (filename) VALUES (?)", file); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", file, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", file, err)
	}
	return nil
}

func (db *DB) appliedMigrations() (map[string]bool, error) {
	rows, err := db.Conn.Query("SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// splitStatements splits SQL text on semicolons that are not inside a
// single-quoted literal. Empty statements are dropped.
func splitStatements(sql string) []string {
	var statements []string
	var current strings.Builder
	inString := false

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			statements = append(statements, s)
		}
		current.Reset()
	}

	for i := 0; i < len(sql); i++ {
		ch := sql[i]

		if ch == '\'' {
			// '' is an escaped quote inside a literal
			if inString && i+1 < len(sql) && sql[i+1] == '\'' {
				current.WriteString("''")
				i++
				continue
			}
			inString = !inString
		}

		if ch == ';' && !inString {
			flush()
			continue
		}
		current.WriteByte(ch)
	}
	flush()

	return statements
}
