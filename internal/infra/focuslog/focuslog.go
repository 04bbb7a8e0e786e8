// Package focuslog records completed work sessions in a local SQLite database.
package focuslog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/runoshun/taskline/internal/domain"
	_ "modernc.org/sqlite"
)

// Ensure Log implements domain.FocusLog.
var _ domain.FocusLog = (*Log)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS focus_sessions (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id          INTEGER NOT NULL,
	started_at       INTEGER NOT NULL,
	duration_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_focus_sessions_started_at ON focus_sessions(started_at);
`

// Log is a SQLite-backed focus session log.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the focus log database at path.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create focus log directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate focus log: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record stores a completed session.
func (l *Log) Record(ctx context.Context, s domain.FocusSession) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO focus_sessions (task_id, started_at, duration_seconds) VALUES (?, ?, ?)`,
		s.TaskID, s.StartedAt.Unix(), int64(s.Duration/time.Second),
	)
	if err != nil {
		return fmt.Errorf("record focus session: %w", err)
	}
	return nil
}

// List returns sessions started at or after since, newest first.
func (l *Log) List(ctx context.Context, since time.Time) ([]domain.FocusSession, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, task_id, started_at, duration_seconds FROM focus_sessions
		 WHERE started_at >= ? ORDER BY started_at DESC, id DESC`,
		since.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []domain.FocusSession{}
	for rows.Next() {
		var (
			s        domain.FocusSession
			started  int64
			duration int64
		)
		if err := rows.Scan(&s.ID, &s.TaskID, &started, &duration); err != nil {
			return nil, fmt.Errorf("scan focus session: %w", err)
		}
		s.StartedAt = time.Unix(started, 0)
		s.Duration = time.Duration(duration) * time.Second
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	return sessions, nil
}
