package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"snipman/internal/domain"
)

type tomlDocument struct {
	Snippets []domain.Snippet `toml:"snippets"`
}

// TOMLStore keeps snippets as an array of tables in a TOML file
type TOMLStore struct {
	path string
}

// NewTOMLStore creates a store for the file at path
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

// Path returns the backing file
func (s *TOMLStore) Path() string {
	return s.path
}

// Load reads all snippets. A missing file holds no snippets.
func (s *TOMLStore) Load(ctx context.Context) ([]domain.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snippets file: %w", err)
	}

	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snippets file: %w", err)
	}
	for i := range doc.Snippets {
		doc.Snippets[i] = doc.Snippets[i].Normalize()
	}
	return doc.Snippets, nil
}

// Save replaces the file contents. The file is written next to its final
// location and renamed into place.
func (s *TOMLStore) Save(ctx context.Context, snippets []domain.Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if snippets == nil {
		snippets = []domain.Snippet{}
	}
	data, err := toml.Marshal(tomlDocument{Snippets: snippets})
	if err != nil {
		return fmt.Errorf("failed to marshal snippets: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snippets-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snippets file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snippets file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snippets file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save
func (s *TOMLStore) Close() error {
	return nil
}
