package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEditorMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadEditor(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEditor(), cfg)
}

func TestLoadEditorOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	data := []byte(`
scenes_dir: /tmp/scenes
run_toggle_key: F5
script_workers: 4
script_budget: 10ms
log_level: debug
window:
  width: 800
options:
  snap_to_grid: true
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadEditor(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/scenes", cfg.ScenesDir)
	assert.Equal(t, "./Models", cfg.ModelsDir, "unset fields keep defaults")
	assert.Equal(t, "F5", cfg.RunToggleKey)
	assert.Equal(t, 4, cfg.ScriptWorkers)
	assert.Equal(t, 10*time.Millisecond, cfg.ScriptBudget)
	assert.Equal(t, int32(800), cfg.Window.Width)
	assert.Equal(t, int32(1080), cfg.Window.Height)
	assert.True(t, cfg.Options.SnapToGrid)
	assert.True(t, cfg.Options.ShowAxis)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadEditorRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero workers", body: "script_workers: 0\n"},
		{name: "bad level", body: "log_level: loud\n"},
		{name: "empty scenes dir", body: "scenes_dir: \"\"\n"},
		{name: "not yaml", body: "window: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "editor.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))

			_, err := LoadEditor(path)
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}
