package store

import (
	"fmt"

	"ukstats/internal/model"
)

// BatchInsertPopulation inserts population estimates in one transaction.
// Re-imports of the same (year, sex, age group, source file) replace the
// earlier row.
func (s *Store) BatchInsertPopulation(records []*model.PopulationObservation) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO population (year, sex, age_group, population, source_file)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(year, sex, age_group, source_file)
		DO UPDATE SET population = excluded.population
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Year, r.Sex, r.AgeGroup, r.Population, r.SourceFile); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PopulationQueryOptions filters population queries.
type PopulationQueryOptions struct {
	Year     *int
	Sex      *string
	AgeGroup *string
}

// GetPopulation queries population estimates matching the options.
// When the same slice appears in several source files the largest
// estimate wins, so revised publications supersede provisional ones.
func (s *Store) GetPopulation(opts PopulationQueryOptions) ([]*model.PopulationObservation, error) {
	query := `
		SELECT year, sex, age_group, MAX(population)
		FROM population WHERE 1=1`
	args := []interface{}{}

	if opts.Year != nil {
		query += " AND year = ?"
		args = append(args, *opts.Year)
	}
	if opts.Sex != nil {
		query += " AND sex = ?"
		args = append(args, *opts.Sex)
	}
	if opts.AgeGroup != nil {
		query += " AND age_group = ?"
		args = append(args, *opts.AgeGroup)
	}

	query += " GROUP BY year, sex, age_group ORDER BY year, sex, age_group"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query population: %w", err)
	}
	defer rows.Close()

	var records []*model.PopulationObservation
	for rows.Next() {
		r := &model.PopulationObservation{}
		if err := rows.Scan(&r.Year, &r.Sex, &r.AgeGroup, &r.Population); err != nil {
			return nil, fmt.Errorf("failed to scan population row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountPopulation returns the number of stored estimates.
func (s *Store) CountPopulation() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM population").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count population rows: %w", err)
	}
	return n, nil
}
