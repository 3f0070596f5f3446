// Package store saves the statistics of a run in an sqlite database, so
// they can be queried with sql instead of by reading the reports.
// Counts are stored as they were collected. The division of the
// symmetry counters by three is only done in the csv report.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andrew-torda/pdbfreq/pkg/freq"
	_ "modernc.org/sqlite"
)

var schema = []string{
	`DROP TABLE IF EXISTS tag_counts`,
	`DROP TABLE IF EXISTS field_values`,
	`CREATE TABLE tag_counts (
		file  TEXT NOT NULL,
		tag   TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (file, tag)
	)`,
	`CREATE TABLE field_values (
		tag   TEXT NOT NULL,
		field TEXT NOT NULL,
		value TEXT NOT NULL,
		file  TEXT NOT NULL,
		PRIMARY KEY (tag, field, value, file)
	)`,
}

// Store is an open database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces whatever was in the database with the corpus, in one
// transaction.
func (s *Store) Save(ctx context.Context, c *freq.Corpus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	counts, err := tx.PrepareContext(ctx, `INSERT INTO tag_counts (file, tag, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer counts.Close()
	for _, fs := range c.Files {
		for tag, n := range fs.Counts {
			if _, err := counts.ExecContext(ctx, fs.Name, tag, n); err != nil {
				return fmt.Errorf("saving %s %s: %w", fs.Name, tag, err)
			}
		}
	}

	values, err := tx.PrepareContext(ctx, `INSERT INTO field_values (tag, field, value, file) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer values.Close()
	for tag, byField := range c.Index {
		for field, byValue := range byField {
			for value, ids := range byValue {
				for id := range ids {
					if _, err := values.ExecContext(ctx, tag, field, value, id); err != nil {
						return fmt.Errorf("saving %s.%s: %w", tag, field, err)
					}
				}
			}
		}
	}
	return tx.Commit()
}

// Count reads back one count. A missing row is zero.
func (s *Store) Count(ctx context.Context, file, tag string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM tag_counts WHERE file = ? AND tag = ?`, file, tag).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}

// Files returns the files which had value in a field, sorted.
func (s *Store) Files(ctx context.Context, tag, field, value string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file FROM field_values WHERE tag = ? AND field = ? AND value = ? ORDER BY file`,
		tag, field, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
