package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"snipman/internal/domain"
	"snipman/internal/logger"
	"snipman/internal/state"
)

// Supported backends
const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

// Store persists the snippet list. Positions are preserved: Load returns
// snippets in the order Save received them.
type Store interface {
	Load(ctx context.Context) ([]domain.Snippet, error)
	Save(ctx context.Context, snippets []domain.Snippet) error
	Close() error
}

// Open opens the store for backend at path. An empty path uses DefaultPath.
func Open(backend, path string) (Store, error) {
	if path == "" {
		path = DefaultPath(backend)
	}

	switch backend {
	case BackendTOML, "":
		return NewTOMLStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// DefaultPath returns the data file location for backend inside the user
// config directory.
func DefaultPath(backend string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	name := "snippets.toml"
	if backend == BackendSQLite {
		name = "snippets.db"
	}
	return filepath.Join(configDir, "snipman", name)
}

// LoadState builds application state from the stored snippets. It logs
// through the logger carried by ctx, if any.
func LoadState(ctx context.Context, s Store) (*state.AppState, error) {
	log := logger.FromContext(ctx).WithName("store")

	snippets, err := s.Load(ctx)
	if err != nil {
		log.Error(err, "failed to load snippets")
		return nil, err
	}

	app := state.NewAppState()
	for _, snippet := range snippets {
		app.AddSnippet(snippet)
	}
	if err := app.Validate(); err != nil {
		return nil, fmt.Errorf("loaded snippets are inconsistent: %w", err)
	}
	log.Info("snippets loaded", "count", app.Len(), "categories", len(app.Categories()))
	return app, nil
}

// SaveState writes the snippets of app to s
func SaveState(ctx context.Context, s Store, app *state.AppState) error {
	return s.Save(ctx, app.Snippets())
}
