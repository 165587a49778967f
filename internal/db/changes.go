package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewRunID returns an identifier grouping the changes of one invocation
func NewRunID() string {
	return uuid.NewString()
}

// RecordChange stores a change. ID is set on success, and Timestamp too
// when it was left zero.
func (d *DB) RecordChange(change *Change) error {
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now()
	}

	result, err := d.conn.Exec(`
		INSERT INTO attribute_changes (run_id, device, attribute, previous_value, requested_value, resulting_value, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, change.RunID, change.Device, change.Attribute, nullString(change.Previous),
		change.Requested, nullString(change.Resulting), change.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to record change: %w", err)
	}

	id, _ := result.LastInsertId()
	change.ID = id

	return nil
}

// GetChanges returns the most recent changes of a device, newest first.
// An empty attribute matches every attribute.
func (d *DB) GetChanges(device, attribute string, limit int) ([]*Change, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(`
		SELECT id, run_id, device, attribute, previous_value, requested_value, resulting_value, timestamp
		FROM attribute_changes
		WHERE device = ? AND (? = '' OR attribute = ?)
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, device, attribute, attribute, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query changes: %w", err)
	}
	defer rows.Close()

	return scanChanges(rows)
}

func scanChanges(rows *sql.Rows) ([]*Change, error) {
	var changes []*Change
	for rows.Next() {
		var change Change
		var previous, resulting sql.NullString

		err := rows.Scan(
			&change.ID, &change.RunID, &change.Device, &change.Attribute,
			&previous, &change.Requested, &resulting, &change.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}

		if previous.Valid {
			change.Previous = &previous.String
		}
		if resulting.Valid {
			change.Resulting = &resulting.String
		}

		changes = append(changes, &change)
	}

	return changes, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
