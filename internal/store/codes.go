package store

import (
	"fmt"

	"ukstats/internal/model"
)

// BatchInsertCodeRecords upserts code description reference rows.
func (s *Store) BatchInsertCodeRecords(records []model.CodeRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO code_records (code, era, description) VALUES (?, ?, ?)
		ON CONFLICT(code, era) DO UPDATE SET description = excluded.description
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Code, string(r.Era), r.Description); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCodeRecords returns every code record, ordered by era then code.
// Pass a non-empty era to restrict to one revision.
func (s *Store) GetCodeRecords(era model.Era) ([]model.CodeRecord, error) {
	query := "SELECT code, era, description FROM code_records"
	args := []interface{}{}
	if era != "" {
		query += " WHERE era = ?"
		args = append(args, string(era))
	}
	query += " ORDER BY era, code"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query code records: %w", err)
	}
	defer rows.Close()

	var records []model.CodeRecord
	for rows.Next() {
		var r model.CodeRecord
		var eraStr string
		if err := rows.Scan(&r.Code, &eraStr, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan code record: %w", err)
		}
		r.Era = model.Era(eraStr)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ReplaceAssignments deletes every stored assignment and writes the
// given set in one transaction, so a harmonization run is all-or-nothing.
func (s *Store) ReplaceAssignments(assignments []model.Assignment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM assignments"); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO assignments (code, era, description, category_id, category_name, confidence)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		_, err := stmt.Exec(a.Code, string(a.Era), a.Description,
			a.CategoryID, a.CategoryName, string(a.Confidence))
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAssignments returns every assignment, ordered by era then code.
func (s *Store) GetAssignments() ([]model.Assignment, error) {
	rows, err := s.db.Query(`
		SELECT code, era, description, category_id, category_name, confidence
		FROM assignments ORDER BY era, code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var eraStr, conf string
		if err := rows.Scan(&a.Code, &eraStr, &a.Description,
			&a.CategoryID, &a.CategoryName, &conf); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Era = model.Era(eraStr)
		a.Confidence = model.Confidence(conf)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CategoryCount is the number of (code, era) pairs assigned to one category.
type CategoryCount struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Codes        int    `json:"codes"`
}

// GetCategoryCounts summarizes assignments per category, largest first.
func (s *Store) GetCategoryCounts() ([]CategoryCount, error) {
	rows, err := s.db.Query(`
		SELECT category_id, category_name, COUNT(*) AS n
		FROM assignments GROUP BY category_id, category_name
		ORDER BY n DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Codes); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
