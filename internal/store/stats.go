package store

import (
	"context"
	"fmt"
	"time"
)

// SnapshotStatus describes a saved collection without its payload.
type SnapshotStatus struct {
	Kind      string    `json:"kind"`
	Items     int       `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	UniqueVisitors   int64            `json:"unique_visitors"`
	VisitorsToday    int64            `json:"visitors_today"`
	VisitorsThisWeek int64            `json:"visitors_this_week"`
	FetchesOK        int64            `json:"fetches_ok"`
	FetchesFailed    int64            `json:"fetches_failed"`
	Snapshots        []SnapshotStatus `json:"snapshots"`
	RecentVisitors   []Visit          `json:"recent_visitors"`
	RecentFailures   []FetchRecord    `json:"recent_failures"`
}

// Stats gathers dashboard figures relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay.UnixMilli()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.AddDate(0, 0, -7).UnixMilli()}},
		{&stats.FetchesOK, `SELECT COUNT(*) FROM fetch_log WHERE ok = 1`, nil},
		{&stats.FetchesFailed, `SELECT COUNT(*) FROM fetch_log WHERE ok = 0`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, items, fetched_at FROM snapshots ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("stats snapshots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st SnapshotStatus
		var ts int64
		if err := rows.Scan(&st.Kind, &st.Items, &ts); err != nil {
			return nil, fmt.Errorf("scan snapshot status: %w", err)
		}
		st.FetchedAt = time.UnixMilli(ts)
		stats.Snapshots = append(stats.Snapshots, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentFailures, err = s.RecentFailures(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}
