package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/llm-analytics-tui/internal/logger"
	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// timeLayout is the stored form of every timestamp, always in UTC.
// It compares correctly against SQLite's datetime() output.
const timeLayout = "2006-01-02 15:04:05.000"

// InsertLoadEvent records a load attempt.
func (db *DB) InsertLoadEvent(ctx context.Context, event *models.LoadEvent) error {
	query := `
		INSERT INTO load_events (
			load_id, seq, source, started_at, duration_ms, row_count, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	startedAt := event.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	status := event.Status
	if status == "" {
		status = models.LoadStatusOK
	}

	result, err := db.ExecContext(ctx, query,
		event.LoadID,
		int64(event.Seq),
		event.Source,
		formatTime(startedAt),
		event.Duration.Milliseconds(),
		event.RowCount,
		string(status),
		nullString(event.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert load event: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		event.ID = id
	}

	return nil
}

// GetRecentLoadEvents returns the most recent load attempts, newest first.
func (db *DB) GetRecentLoadEvents(ctx context.Context, limit int) ([]models.LoadEvent, error) {
	query := `
		SELECT id, load_id, seq, source, started_at, duration_ms, row_count, status, error
		FROM load_events
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent load events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var events []models.LoadEvent
	for rows.Next() {
		var (
			event      models.LoadEvent
			seq        int64
			startedAt  string
			durationMs int64
			status     string
			errStr     sql.NullString
		)

		err := rows.Scan(
			&event.ID,
			&event.LoadID,
			&seq,
			&event.Source,
			&startedAt,
			&durationMs,
			&event.RowCount,
			&status,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load event: %w", err)
		}

		event.Seq = uint64(seq)
		event.StartedAt = parseTime(startedAt)
		event.Duration = time.Duration(durationMs) * time.Millisecond
		event.Status = models.LoadStatus(status)
		event.Error = errStr.String
		events = append(events, event)
	}

	return events, rows.Err()
}

// GetLoadStats aggregates the whole load log.
func (db *DB) GetLoadStats(ctx context.Context) (*models.LoadStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0),
			MAX(CASE WHEN status = 'ok' THEN started_at END),
			MAX(CASE WHEN status = 'error' THEN started_at END)
		FROM load_events
	`

	var (
		stats       models.LoadStats
		avgMs       float64
		lastSuccess sql.NullString
		lastFailure sql.NullString
	)
	err := db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Failures,
		&avgMs,
		&lastSuccess,
		&lastFailure,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query load stats: %w", err)
	}

	stats.AvgDuration = time.Duration(avgMs * float64(time.Millisecond))
	if lastSuccess.Valid {
		stats.LastSuccess = parseTime(lastSuccess.String)
	}
	if lastFailure.Valid {
		stats.LastFailure = parseTime(lastFailure.String)
	}

	return &stats, nil
}

// PruneLoadEvents deletes load events older than maxAge and returns how many
// were removed.
func (db *DB) PruneLoadEvents(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := formatTime(time.Now().Add(-maxAge))

	result, err := db.ExecContext(ctx, "DELETE FROM load_events WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune load events: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned load events: %w", err)
	}
	return n, nil
}

// MarkCostAlert records that day's cost alert. It returns false when an
// alert for that day was already recorded, so each day alerts once.
func (db *DB) MarkCostAlert(ctx context.Context, day string, cost, threshold float64) (bool, error) {
	result, err := db.ExecContext(ctx, `
		INSERT OR IGNORE INTO cost_alerts (day, cost, threshold, alerted_at)
		VALUES (?, ?, ?, ?)
	`, day, cost, threshold, formatTime(time.Now()))
	if err != nil {
		return false, fmt.Errorf("failed to record cost alert: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check cost alert: %w", err)
	}
	return n > 0, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		// Rows written without milliseconds.
		t, _ = time.ParseInLocation(time.DateTime, s, time.UTC)
	}
	return t
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
