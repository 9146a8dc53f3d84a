// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of completed conversions so earlier
// runs can be listed later.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftext/pkg/types"
)

const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			output TEXT NOT NULL,
			backend TEXT NOT NULL,
			pages INTEGER NOT NULL,
			empty_pages TEXT,
			failed_pages TEXT,
			info TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one conversion to the ledger.
func (s *Store) Record(ctx context.Context, conv *types.Conversion) error {
	empty, err := json.Marshal(conv.EmptyPages)
	if err != nil {
		return fmt.Errorf("encoding empty pages: %w", err)
	}
	failed, err := json.Marshal(conv.FailedPages)
	if err != nil {
		return fmt.Errorf("encoding failed pages: %w", err)
	}
	info, err := json.Marshal(conv.Info)
	if err != nil {
		return fmt.Errorf("encoding document info: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversions (source, output, backend, pages, empty_pages, failed_pages, info, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		conv.Source, conv.Output, conv.Backend, conv.Pages,
		string(empty), string(failed), string(info),
		conv.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", conv.Source, err)
	}
	return nil
}

// Recent returns up to limit conversions, newest first. A limit of zero or
// less uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.Conversion, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output, backend, pages, empty_pages, failed_pages, info, converted_at
		FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var convs []types.Conversion
	for rows.Next() {
		var (
			c                   types.Conversion
			empty, failed, info sql.NullString
			convertedAt         string
		)
		if err := rows.Scan(&c.Source, &c.Output, &c.Backend, &c.Pages,
			&empty, &failed, &info, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if empty.Valid {
			json.Unmarshal([]byte(empty.String), &c.EmptyPages)
		}
		if failed.Valid {
			json.Unmarshal([]byte(failed.String), &c.FailedPages)
		}
		if info.Valid {
			json.Unmarshal([]byte(info.String), &c.Info)
		}
		if t, err := time.Parse(time.RFC3339Nano, convertedAt); err == nil {
			c.ConvertedAt = t
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}
