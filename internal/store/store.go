// Package store persists the server's own state in SQLite: the last good copy
// of each remote collection, a log of remote fetches, and privacy-conscious
// visitor metrics.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned when no copy of a collection has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,  -- hashed instead of raw IP
		user_agent TEXT,
		path TEXT,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		kind TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		items INTEGER NOT NULL,
		fetched_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS fetch_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		ok INTEGER NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure %s: %w", path, err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate %s: %w", path, err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot is the last good copy of a remote collection.
type Snapshot struct {
	Kind      string
	Payload   []byte
	Items     int
	FetchedAt time.Time
}

// SaveSnapshot replaces the saved copy of a collection.
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (kind, payload, items, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET
			payload = excluded.payload,
			items = excluded.items,
			fetched_at = excluded.fetched_at
	`, snap.Kind, snap.Payload, snap.Items, snap.FetchedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", snap.Kind, err)
	}
	return nil
}

// LoadSnapshot returns the saved copy of a collection or ErrNoSnapshot.
func (s *Store) LoadSnapshot(ctx context.Context, kind string) (Snapshot, error) {
	snap := Snapshot{Kind: kind}
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, items, fetched_at FROM snapshots WHERE kind = ?`, kind,
	).Scan(&snap.Payload, &snap.Items, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load %s snapshot: %w", kind, err)
	}
	snap.FetchedAt = time.UnixMilli(fetchedAt)
	return snap, nil
}

// FetchRecord is one remote fetch outcome.
type FetchRecord struct {
	Kind      string        `json:"kind"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// RecordFetch appends a fetch outcome to the log.
func (s *Store) RecordFetch(ctx context.Context, rec FetchRecord) error {
	var errText sql.NullString
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fetch_log (kind, ok, error, duration_ms, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Kind, rec.OK, errText, rec.Duration.Milliseconds(), rec.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("record %s fetch: %w", rec.Kind, err)
	}
	return nil
}

// RecentFailures returns the latest failed fetches, newest first.
func (s *Store) RecentFailures(ctx context.Context, limit int) ([]FetchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COALESCE(error, ''), duration_ms, timestamp
		FROM fetch_log
		WHERE ok = 0
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query fetch failures: %w", err)
	}
	defer rows.Close()

	var out []FetchRecord
	for rows.Next() {
		var rec FetchRecord
		var durMS, ts int64
		if err := rows.Scan(&rec.Kind, &rec.Error, &durMS, &ts); err != nil {
			return nil, fmt.Errorf("scan fetch failure: %w", err)
		}
		rec.Duration = time.Duration(durMS) * time.Millisecond
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
