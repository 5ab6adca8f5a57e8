package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunLog is one pipeline run record.
type RunLog struct {
	ID             string     `json:"id"`
	Operation      string     `json:"operation"`
	Filename       string     `json:"filename,omitempty"`
	TotalSheets    int        `json:"totalSheets"`
	ImportedSheets int        `json:"importedSheets"`
	SkippedSheets  int        `json:"skippedSheets"`
	RowsKept       int        `json:"rowsKept"`
	RowsSkipped    int        `json:"rowsSkipped"`
	Status         string     `json:"status"` // processing/completed/failed
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// CreateRunLog records the start of a run and returns its id.
func (s *Store) CreateRunLog(operation, filename string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO run_logs (id, operation, filename, status)
		VALUES (?, ?, ?, 'processing')
	`, id, operation, filename)
	if err != nil {
		return "", fmt.Errorf("failed to create run log: %w", err)
	}
	return id, nil
}

// CompleteRunLog finalizes a run record.
func (s *Store) CompleteRunLog(id string, totalSheets, importedSheets, skippedSheets, rowsKept, rowsSkipped int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE run_logs SET
			total_sheets = ?,
			imported_sheets = ?,
			skipped_sheets = ?,
			rows_kept = ?,
			rows_skipped = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalSheets, importedSheets, skippedSheets, rowsKept, rowsSkipped, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to complete run log: %w", err)
	}
	return nil
}

// GetRecentRunLogs returns the most recent runs, newest first.
func (s *Store) GetRecentRunLogs(limit int) ([]RunLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, operation, filename, total_sheets, imported_sheets,
			skipped_sheets, rows_kept, rows_skipped, status, error_message,
			started_at, completed_at
		FROM run_logs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run logs: %w", err)
	}
	defer rows.Close()

	var logs []RunLog
	for rows.Next() {
		var l RunLog
		if err := rows.Scan(&l.ID, &l.Operation, &l.Filename, &l.TotalSheets,
			&l.ImportedSheets, &l.SkippedSheets, &l.RowsKept, &l.RowsSkipped,
			&l.Status, &l.ErrorMessage, &l.StartedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
