package game

import (
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldedit/internal/engine"
)

func TestEditorPrefsRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	e, _ := newEditorWithConfig(t, cfg, "Axis")
	require.NoError(t, e.RenameScene("level"))
	place(t, e, rl.Vector3{X: 4})
	require.NoError(t, e.SaveScene())

	e.camera.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	e.camera.Yaw = 45
	e.camera.Pitch = -30
	e.camera.MoveSpeed = 12
	e.Options.SnapToGrid = true
	e.Windows.Logs = true
	e.Windows.ModelList = false
	e.SavePrefs(cfg.PrefsFile)

	other, l := newEditorWithConfig(t, cfg)
	other.ApplyPrefs(LoadEditorPrefs(cfg.PrefsFile, l.Logger()))

	assert.Equal(t, e.Camera(), other.Camera())
	assert.True(t, other.Options.SnapToGrid)
	assert.True(t, other.Windows.Logs)
	assert.False(t, other.Windows.ModelList)
	assert.False(t, other.Windows.Saved, "popups are not persisted")
	assert.Equal(t, "Axis", other.SelectedModel())
	assert.Equal(t, "level", other.World().Scene.Ref.Name)
	assert.Equal(t, 1, other.World().Scene.Len())
	assert.Zero(t, l.Errors())
}

func TestLoadEditorPrefsMissingFile(t *testing.T) {
	e, l := newTestEditor(t)

	prefs := LoadEditorPrefs(filepath.Join(t.TempDir(), "none.json"), l.Logger())

	assert.Nil(t, prefs)
	assert.Zero(t, l.Len())
	e.ApplyPrefs(prefs)
	assert.Equal(t, float32(50), e.Camera().MoveSpeed)
}

func TestLoadEditorPrefsCorrupt(t *testing.T) {
	_, l := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	assert.Nil(t, LoadEditorPrefs(path, l.Logger()))
	assert.Equal(t, 1, l.Errors())
}

func TestApplyPrefsSkipsMissingScene(t *testing.T) {
	e, l := newTestEditor(t)

	e.ApplyPrefs(&EditorPrefs{SceneName: "gone", CameraMoveSpeed: 0})

	assert.Equal(t, engine.DefaultSceneName, e.World().Scene.Ref.Name)
	assert.Equal(t, float32(50), e.Camera().MoveSpeed, "zero speed keeps the default")
	assert.Zero(t, l.Errors())
}
