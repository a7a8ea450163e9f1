package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Namespace partitions persisted blobs by lifecycle.
type Namespace string

const (
	// NamespaceLifetime holds per-question stats that survive across
	// sessions.
	NamespaceLifetime Namespace = "lifetime"
	// NamespaceSession holds the per-session answer log, cleared when a
	// new session starts.
	NamespaceSession Namespace = "session"
)

// Backend is the key-value persistence contract. Values are opaque
// JSON blobs keyed by namespace and quiz id, so one quiz's data can
// never clobber another's.
type Backend interface {
	// Get returns the stored blob, or ok=false when nothing is stored.
	Get(ctx context.Context, ns Namespace, quizID string) (value []byte, ok bool, err error)

	// Set overwrites the blob for the key.
	Set(ctx context.Context, ns Namespace, quizID string, value []byte) error

	// Delete removes the blob for the key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, ns Namespace, quizID string) error

	// ActiveQuiz returns the persisted active quiz id, or "" when none
	// has been chosen yet.
	ActiveQuiz(ctx context.Context) (string, error)

	// SetActiveQuiz persists the active quiz id.
	SetActiveQuiz(ctx context.Context, quizID string) error
}

const schema = `
CREATE TABLE IF NOT EXISTS stats_blobs (
    namespace TEXT NOT NULL,
    quiz_id   TEXT NOT NULL,
    value     BLOB NOT NULL,
    PRIMARY KEY (namespace, quiz_id)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const activeQuizKey = "active_quiz"

// SQLiteBackend implements Backend on a local SQLite file.
type SQLiteBackend struct {
	db *sql.DB
}

var _ Backend = (*SQLiteBackend)(nil)

// Open creates a SQLiteBackend at path, applying recommended pragmas
// and creating the schema.
func Open(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) Get(ctx context.Context, ns Namespace, quizID string) ([]byte, bool, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx,
		"SELECT value FROM stats_blobs WHERE namespace = ? AND quiz_id = ?",
		string(ns), quizID).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s/%s: %w", ns, quizID, err)
	}
	return value, true, nil
}

func (b *SQLiteBackend) Set(ctx context.Context, ns Namespace, quizID string, value []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO stats_blobs (namespace, quiz_id, value) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, quiz_id) DO UPDATE SET value = excluded.value`,
		string(ns), quizID, value)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", ns, quizID, err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, ns Namespace, quizID string) error {
	_, err := b.db.ExecContext(ctx,
		"DELETE FROM stats_blobs WHERE namespace = ? AND quiz_id = ?",
		string(ns), quizID)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", ns, quizID, err)
	}
	return nil
}

func (b *SQLiteBackend) ActiveQuiz(ctx context.Context) (string, error) {
	var quizID string
	err := b.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", activeQuizKey).Scan(&quizID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read active quiz: %w", err)
	}
	return quizID, nil
}

func (b *SQLiteBackend) SetActiveQuiz(ctx context.Context, quizID string) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		activeQuizKey, quizID)
	if err != nil {
		return fmt.Errorf("persist active quiz: %w", err)
	}
	return nil
}

// Quizzes lists quiz ids with lifetime data, for the quizzes command.
func (b *SQLiteBackend) Quizzes(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx,
		"SELECT DISTINCT quiz_id FROM stats_blobs WHERE namespace = ? ORDER BY quiz_id",
		string(NamespaceLifetime))
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZDRILL_DB environment variable
// 2. $XDG_DATA_HOME/quizdrill/quizdrill.db
// 3. ~/.local/share/quizdrill/quizdrill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZDRILL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizdrill", "quizdrill.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
