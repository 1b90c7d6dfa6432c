package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"snipman/internal/domain"
	"snipman/internal/logger"
	"snipman/internal/state"
)

func sampleSnippets() []domain.Snippet {
	return []domain.Snippet{
		domain.NewSnippet("ls -la", "list files", ""),
		domain.NewSnippet("git st", "git status alias", "git"),
		domain.NewSnippet("docker ps", "running containers", "docker"),
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := Open(BackendSQLite, filepath.Join(dir, "data", "snippets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	tomlStore, err := Open(BackendTOML, filepath.Join(dir, "data", "snippets.toml"))
	require.NoError(t, err)

	return map[string]Store{
		BackendTOML:   tomlStore,
		BackendSQLite: sqlite,
	}
}

func TestStoresPreserveOrderAndCategories(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, sampleSnippets()))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleSnippets(), got)
			assert.Nil(t, got[0].Category)
		})
	}
}

func TestStoresReplaceOnSave(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, sampleSnippets()))
			require.NoError(t, s.Save(ctx, sampleSnippets()[1:2]))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "git st", got[0].Command)

			require.NoError(t, s.Save(ctx, nil))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestTOMLMissingFileIsEmpty(t *testing.T) {
	s := NewTOMLStore(filepath.Join(t.TempDir(), "absent.toml"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTOMLCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[snippets]\ncommand = "), 0644))

	_, err := NewTOMLStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse snippets file")
}

func TestTOMLFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.toml")
	s := NewTOMLStore(path)
	require.NoError(t, s.Save(context.Background(), sampleSnippets()[:2]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[snippets]]")
	assert.Regexp(t, `category\s*=\s*['"]git['"]`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("yaml", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "snippets.toml", filepath.Base(DefaultPath(BackendTOML)))
	assert.Equal(t, "snippets.db", filepath.Base(DefaultPath(BackendSQLite)))
	assert.Equal(t, "snipman", filepath.Base(filepath.Dir(DefaultPath(BackendTOML))))
}

func TestLoadAndSaveState(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			app := state.NewAppState()
			for _, snippet := range sampleSnippets() {
				app.AddSnippet(snippet)
			}
			_, err := app.RemoveSnippet(0)
			require.NoError(t, err)
			require.NoError(t, SaveState(ctx, s, app))

			loaded, err := LoadState(ctx, s)
			require.NoError(t, err)
			assert.Equal(t, app.Snippets(), loaded.Snippets())
			assert.Equal(t, []domain.Category{
				{Name: domain.NoCategory, Positions: []int{}},
				{Name: "git", Positions: []int{0}},
				{Name: "docker", Positions: []int{1}},
			}, loaded.Categories())
		})
	}
}

func TestSQLiteInMemory(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleSnippets()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestEmptyCategoryLoadsAsUncategorized(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "snippets.toml")
	content := "[[snippets]]\ncommand = \"pwd\"\ndescription = \"where am I\"\ncategory = \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := NewTOMLStore(path).Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Category)

	empty := ""
	sqlite, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer sqlite.Close()
	require.NoError(t, sqlite.Save(ctx, []domain.Snippet{{Command: "pwd", Category: &empty}}))

	app, err := LoadState(ctx, sqlite)
	require.NoError(t, err)
	snippet, err := app.Snippet(0)
	require.NoError(t, err)
	assert.Nil(t, snippet.Category)
	assert.Equal(t, []domain.Category{
		{Name: domain.NoCategory, Positions: []int{0}},
	}, app.Categories())
}

func TestLoadStateLogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	log, zl := logger.New(zapcore.AddSync(&buf), zapcore.InfoLevel)
	ctx := logger.WithLogger(context.Background(), log)

	s := NewTOMLStore(filepath.Join(t.TempDir(), "snippets.toml"))
	require.NoError(t, s.Save(ctx, sampleSnippets()))

	_, err := LoadState(ctx, s)
	require.NoError(t, err)
	require.NoError(t, zl.Sync())
	assert.Contains(t, buf.String(), `"snippets loaded"`)
	assert.Contains(t, buf.String(), `"count":3`)
}
