// Package audit records destructive buffer operations (file wipes,
// purged shrinks) in a local SQLite database so there is a durable
// record of what was destroyed, when, and by whom.
//
// The database lives at a configurable path (default:
// ~/.config/bytesafe/audit.db) and holds a single append-only table.
// Entries are never updated or deleted by this package.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultFileName is the audit database file name inside the global
// config directory.
const DefaultFileName = "audit.db"

// Operation is the type of destructive operation that was performed.
type Operation string

const (
	// OpWipe is logged when a file's contents are securely erased.
	OpWipe Operation = "wipe"
	// OpShrinkPurge is logged when a buffer shrink purges the discarded
	// bytes.
	OpShrinkPurge Operation = "shrink-purge"
	// OpSeal is logged when a buffer is encrypted to a passphrase.
	OpSeal Operation = "seal"
	// OpKeyDelete is logged when a named buffer is removed from the OS
	// keychain.
	OpKeyDelete Operation = "key-delete"
)

// Entry is a single audit record.
type Entry struct {
	// Timestamp is the UTC time the operation occurred (RFC 3339).
	Timestamp string
	// User is the OS username of the person who ran the command.
	User string
	// Operation is the destructive operation performed.
	Operation Operation
	// Target identifies what was operated on (file path, key name, or a
	// short buffer description).
	Target string
	// Detail contains optional extra context (byte counts, verification
	// outcome).
	Detail string
}

// Logger appends audit entries to the SQLite database. It is safe for
// concurrent use; the database handle is opened lazily on first write.
type Logger struct {
	path string
	mu   sync.Mutex
	db   *sql.DB
}

// NewLogger creates a Logger backed by the database at path. The file
// and its parent directory are created on first write.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// open lazily opens the database and creates the schema.
func (l *Logger) open() (*sql.DB, error) {
	if l.db != nil {
		return l.db, nil
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating audit directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", l.path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS operations (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			user      TEXT NOT NULL,
			operation TEXT NOT NULL,
			target    TEXT NOT NULL,
			detail    TEXT NOT NULL DEFAULT ''
		)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating audit schema: %w", err)
	}

	l.db = db
	return db, nil
}

// Log appends a single entry. Timestamp and User are filled in
// automatically when empty.
func (l *Logger) Log(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	db, err := l.open()
	if err != nil {
		return err
	}

	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if e.User == "" {
		e.User = currentUser()
	}

	_, err = db.Exec(
		"INSERT INTO operations (timestamp, user, operation, target, detail) VALUES (?, ?, ?, ?, ?)",
		e.Timestamp, e.User, string(e.Operation), e.Target, e.Detail,
	)
	if err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// Read returns all entries, oldest first. A database that does not exist
// yet yields an empty slice, not an error.
func (l *Logger) Read() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := l.open()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT timestamp, user, operation, target, detail FROM operations ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var op string
		if err := rows.Scan(&e.Timestamp, &e.User, &op, &e.Target, &e.Detail); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.Operation = Operation(op)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}

// Close releases the database handle. Safe to call without a prior
// write.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Path returns the database file path.
func (l *Logger) Path() string {
	return l.path
}

// currentUser returns the current OS username, or "unknown" if it cannot
// be determined.
func currentUser() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	return u.Username
}
