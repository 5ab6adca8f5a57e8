package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"ukstats/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store is the SQLite persistence layer for the compiled statistics.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and ensures the
// schema exists.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite works best over a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.seedEras(); err != nil {
		return nil, fmt.Errorf("failed to seed eras: %w", err)
	}

	return store, nil
}

func (s *Store) seedEras() error {
	for _, r := range model.EraRanges {
		_, err := s.db.Exec(`
			INSERT INTO eras (era, start_year, end_year) VALUES (?, ?, ?)
			ON CONFLICT(era) DO UPDATE SET start_year = excluded.start_year,
				end_year = excluded.end_year
		`, string(r.Era), r.StartYear, r.EndYear)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the raw connection for transactions and ad-hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}
