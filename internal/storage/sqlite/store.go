package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hetulpatel/catalogseed/internal/models"
)

const (
	DefaultPath = "server.db"
)

// ErrUserExists is returned by AddUser when the username is already taken.
var ErrUserExists = errors.New("user already exists")

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users(username TEXT PRIMARY KEY, password TEXT);
CREATE TABLE IF NOT EXISTS files(mid INTEGER PRIMARY KEY ASC, name TEXT, path TEXT);
`

// CreateTables ensures both the users and files tables exist.
func (s *Store) CreateTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaSQL)
	return err
}

// DropTables removes both tables.
func (s *Store) DropTables(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS users;`,
		`DROP TABLE IF EXISTS files;`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ClearTables deletes every row but keeps the schema.
func (s *Store) ClearTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users; DELETE FROM files;`)
	return err
}

// AddUser inserts one credential row and commits it.
func (s *Store) AddUser(ctx context.Context, u models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO users VALUES(?, ?)`, u.Username, u.Password); err != nil {
		tx.Rollback()
		if isConstraint(err) {
			return fmt.Errorf("%w: %q: %w", ErrUserExists, u.Username, err)
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return tx.Commit()
}

// AddFiles inserts all entries in a single transaction and returns how many
// rows were written, recording the assigned mid on each entry. A failed
// insert leaves nothing behind.
func (s *Store) AddFiles(ctx context.Context, entries []models.CatalogEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO files(name, path) VALUES(?,?)`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	for i := range entries {
		res, err := stmt.ExecContext(ctx, entries[i].Name, entries[i].Path)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("insert file %s: %w", entries[i].Path, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			entries[i].ID = id
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit files: %w", err)
	}
	return len(entries), nil
}

func isConstraint(err error) bool {
	var se *moderncsqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	// extended codes keep the primary code in the low byte
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
