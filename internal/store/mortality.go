package store

import (
	"fmt"

	"ukstats/internal/model"
)

// BatchInsertMortality inserts compiled mortality observations in one
// transaction.
func (s *Store) BatchInsertMortality(records []*model.MortalityObservation) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO mortality (
			year, cause, cause_description, sex, age_group, deaths,
			source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.Year, r.Cause, r.CauseDescription, r.Sex, r.AgeGroup, r.Deaths,
			r.SourceSheet, r.SourceFile,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteMortalityBySourceFile removes earlier imports of the same
// workbook so a re-run replaces instead of duplicating.
func (s *Store) DeleteMortalityBySourceFile(sourceFile string) error {
	if _, err := s.db.Exec("DELETE FROM mortality WHERE source_file = ?", sourceFile); err != nil {
		return fmt.Errorf("failed to delete mortality rows: %w", err)
	}
	return nil
}

// MortalityQueryOptions filters mortality queries. Nil pointers mean
// no filter on that column.
type MortalityQueryOptions struct {
	Year     *int
	YearFrom *int
	YearTo   *int
	Cause    *string
	Sex      *string
	AgeGroup *string
	Limit    int
	Offset   int
}

// GetMortality queries observations matching the options, ordered by
// year, cause, sex, age group.
func (s *Store) GetMortality(opts MortalityQueryOptions) ([]*model.MortalityObservation, error) {
	query := `SELECT id, year, cause, cause_description, sex, age_group, deaths,
		source_sheet, source_file FROM mortality WHERE 1=1`
	args := []interface{}{}

	if opts.Year != nil {
		query += " AND year = ?"
		args = append(args, *opts.Year)
	}
	if opts.YearFrom != nil {
		query += " AND year >= ?"
		args = append(args, *opts.YearFrom)
	}
	if opts.YearTo != nil {
		query += " AND year <= ?"
		args = append(args, *opts.YearTo)
	}
	if opts.Cause != nil {
		query += " AND cause = ?"
		args = append(args, *opts.Cause)
	}
	if opts.Sex != nil {
		query += " AND sex = ?"
		args = append(args, *opts.Sex)
	}
	if opts.AgeGroup != nil {
		query += " AND age_group = ?"
		args = append(args, *opts.AgeGroup)
	}

	query += " ORDER BY year, cause, sex, age_group"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mortality: %w", err)
	}
	defer rows.Close()

	var records []*model.MortalityObservation
	for rows.Next() {
		r := &model.MortalityObservation{}
		if err := rows.Scan(&r.ID, &r.Year, &r.Cause, &r.CauseDescription,
			&r.Sex, &r.AgeGroup, &r.Deaths, &r.SourceSheet, &r.SourceFile); err != nil {
			return nil, fmt.Errorf("failed to scan mortality row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetHarmonizedMortality joins observations to their year-aware category
// assignments. Observations whose (code, era) pair has no assignment
// come back with empty category fields.
func (s *Store) GetHarmonizedMortality(opts MortalityQueryOptions) ([]*model.HarmonizedObservation, error) {
	query := `
		SELECT m.year, m.cause, m.cause_description,
			COALESCE(a.category_id, ''), COALESCE(a.category_name, ''),
			COALESCE(a.confidence, ''),
			m.sex, m.age_group, m.deaths
		FROM mortality m
		LEFT JOIN eras e
			ON m.year BETWEEN e.start_year AND e.end_year
		LEFT JOIN assignments a
			ON a.code = m.cause AND a.era = e.era
		WHERE 1=1`
	args := []interface{}{}

	if opts.Year != nil {
		query += " AND m.year = ?"
		args = append(args, *opts.Year)
	}
	if opts.YearFrom != nil {
		query += " AND m.year >= ?"
		args = append(args, *opts.YearFrom)
	}
	if opts.YearTo != nil {
		query += " AND m.year <= ?"
		args = append(args, *opts.YearTo)
	}
	if opts.Sex != nil {
		query += " AND m.sex = ?"
		args = append(args, *opts.Sex)
	}

	query += " ORDER BY m.year, m.cause, m.sex, m.age_group"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query harmonized mortality: %w", err)
	}
	defer rows.Close()

	var records []*model.HarmonizedObservation
	for rows.Next() {
		r := &model.HarmonizedObservation{}
		var conf string
		if err := rows.Scan(&r.Year, &r.Cause, &r.CauseDescription,
			&r.CategoryID, &r.CategoryName, &conf,
			&r.Sex, &r.AgeGroup, &r.Deaths); err != nil {
			return nil, fmt.Errorf("failed to scan harmonized row: %w", err)
		}
		r.Confidence = model.Confidence(conf)
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetYearlyTotals returns total deaths per year across every cause.
func (s *Store) GetYearlyTotals() ([]model.YearlyTotal, error) {
	rows, err := s.db.Query(`
		SELECT year, SUM(deaths) FROM mortality GROUP BY year ORDER BY year
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly totals: %w", err)
	}
	defer rows.Close()

	var totals []model.YearlyTotal
	for rows.Next() {
		var t model.YearlyTotal
		if err := rows.Scan(&t.Year, &t.TotalDeaths); err != nil {
			return nil, fmt.Errorf("failed to scan yearly total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// MortalityYears returns the distinct years present, ascending.
func (s *Store) MortalityYears() ([]int, error) {
	rows, err := s.db.Query("SELECT DISTINCT year FROM mortality ORDER BY year")
	if err != nil {
		return nil, fmt.Errorf("failed to query mortality years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// CountMortality returns the number of stored observations.
func (s *Store) CountMortality() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM mortality").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count mortality rows: %w", err)
	}
	return n, nil
}
