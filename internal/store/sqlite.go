package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver

	"snipman/internal/domain"
)

const snippetSchema = `
CREATE TABLE IF NOT EXISTS snippets (
	position    INTEGER PRIMARY KEY,
	command     TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT
);
`

// SQLiteStore keeps snippets in a SQLite database, one row per position
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs schema
// migrations. Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a single connection keeps ":memory:" databases alive between calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(snippetSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run schema migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads all snippets ordered by position
func (s *SQLiteStore) Load(ctx context.Context) ([]domain.Snippet, error) {
	const q = `SELECT command, description, category FROM snippets ORDER BY position`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query snippets: %w", err)
	}
	defer rows.Close()

	var snippets []domain.Snippet
	for rows.Next() {
		var snippet domain.Snippet
		var category sql.NullString
		if err := rows.Scan(&snippet.Command, &snippet.Description, &category); err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		if category.Valid {
			name := category.String
			snippet.Category = &name
		}
		snippets = append(snippets, snippet.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snippets: %w", err)
	}
	return snippets, nil
}

// Save replaces all rows in one transaction
func (s *SQLiteStore) Save(ctx context.Context, snippets []domain.Snippet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM snippets`); err != nil {
		return fmt.Errorf("clear snippets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snippets (position, command, description, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, snippet := range snippets {
		var category sql.NullString
		if snippet.Category != nil {
			category = sql.NullString{String: *snippet.Category, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, snippet.Command, snippet.Description, category); err != nil {
			return fmt.Errorf("insert snippet %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snippets: %w", err)
	}
	return nil
}

// Close releases the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
