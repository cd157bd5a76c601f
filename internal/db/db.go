package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB wraps a SQLite database connection.
type DB struct {
	conn *sql.DB
}

// Session is one run of the program against a work directory.
type Session struct {
	ID        string
	WorkDir   string
	Mode      string
	CreatedAt time.Time
}

// Invocation is a journaled tool call.
type Invocation struct {
	ID        string
	SessionID string
	Tool      string
	Input     string
	Output    string
	IsError   bool
	Duration  time.Duration
	CreatedAt time.Time
}

// New opens (or creates) a SQLite database at the given path and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema tables if they don't exist.
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		workdir    TEXT NOT NULL DEFAULT '',
		mode       TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS invocations (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL,
		tool        TEXT NOT NULL,
		input       TEXT NOT NULL DEFAULT '{}',
		output      TEXT NOT NULL DEFAULT '',
		is_error    INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_invocations_session_id ON invocations(session_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// --- Session operations ---

// CreateSession records a new session and returns it.
func (db *DB) CreateSession(id, workDir, mode string) (*Session, error) {
	now := time.Now().UTC()
	_, err := db.conn.Exec(
		"INSERT INTO sessions (id, workdir, mode, created_at) VALUES (?, ?, ?, ?)",
		id, workDir, mode, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return &Session{ID: id, WorkDir: workDir, Mode: mode, CreatedAt: now}, nil
}

// --- Invocation operations ---

// AddInvocation persists a tool call.
func (db *DB) AddInvocation(inv Invocation) error {
	_, err := db.conn.Exec(
		`INSERT INTO invocations (id, session_id, tool, input, output, is_error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.SessionID, inv.Tool, inv.Input, inv.Output,
		inv.IsError, inv.Duration.Milliseconds(), inv.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting invocation: %w", err)
	}
	return nil
}

// ListInvocations returns the most recent invocations first. An empty
// sessionID lists every session; limit <= 0 means no limit.
func (db *DB) ListInvocations(sessionID string, limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(
		`SELECT id, session_id, tool, input, output, is_error, duration_ms, created_at
		 FROM invocations WHERE (? = '' OR session_id = ?)
		 ORDER BY rowid DESC LIMIT ?`,
		sessionID, sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		var durationMS int64
		if err := rows.Scan(
			&inv.ID, &inv.SessionID, &inv.Tool, &inv.Input, &inv.Output,
			&inv.IsError, &durationMS, &inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, inv)
	}
	return out, rows.Err()
}

// CountInvocations returns the number of invocations in a session, or in
// every session when sessionID is empty.
func (db *DB) CountInvocations(sessionID string) (int, error) {
	var n int
	err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM invocations WHERE (? = '' OR session_id = ?)", sessionID, sessionID,
	).Scan(&n)
	return n, err
}

// DeleteInvocations removes the invocations of a session.
func (db *DB) DeleteInvocations(sessionID string) error {
	_, err := db.conn.Exec("DELETE FROM invocations WHERE session_id = ?", sessionID)
	return err
}
