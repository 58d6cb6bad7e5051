package game

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"worldedit/internal/config"
)

// EditorPrefs holds persistent editor preferences saved between sessions
type EditorPrefs struct {
	CameraPosition  rl.Vector3     `json:"cameraPosition"`
	CameraYaw       float32        `json:"cameraYaw"`
	CameraPitch     float32        `json:"cameraPitch"`
	CameraMoveSpeed float32        `json:"cameraMoveSpeed"`
	SceneName       string         `json:"sceneName"`
	SelectedModel   string         `json:"selectedModel,omitempty"`
	Options         config.Options `json:"options"`
	Windows         Windows        `json:"windows"`
}

// LoadEditorPrefs loads editor preferences from disk. A missing file is not
// an error and yields nil.
func LoadEditorPrefs(path string, log *slog.Logger) *EditorPrefs {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Error("read editor prefs failed", "path", path, "err", err)
		}
		return nil
	}

	var prefs EditorPrefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		log.Error("parse editor prefs failed", "path", path, "err", err)
		return nil
	}

	return &prefs
}

// Prefs captures the current editor state.
func (e *Editor) Prefs() EditorPrefs {
	return EditorPrefs{
		CameraPosition:  e.camera.Position,
		CameraYaw:       e.camera.Yaw,
		CameraPitch:     e.camera.Pitch,
		CameraMoveSpeed: e.camera.MoveSpeed,
		SceneName:       e.world.Scene.Ref.Name,
		SelectedModel:   e.selectedModel,
		Options:         e.Options,
		Windows:         e.Windows,
	}
}

// SavePrefs saves the current editor state to disk
func (e *Editor) SavePrefs(path string) {
	data, err := json.MarshalIndent(e.Prefs(), "", "  ")
	if err != nil {
		e.log.Error("marshal editor prefs failed", "err", err)
		return
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		e.log.Error("save editor prefs failed", "path", path, "err", err)
	}
}

// ApplyPrefs applies loaded preferences to the editor. The scene named in
// the prefs is reopened when it still exists.
func (e *Editor) ApplyPrefs(prefs *EditorPrefs) {
	if prefs == nil {
		return
	}

	e.camera.Position = prefs.CameraPosition
	e.camera.Yaw = prefs.CameraYaw
	e.camera.Pitch = prefs.CameraPitch
	if prefs.CameraMoveSpeed > 0 {
		e.camera.MoveSpeed = prefs.CameraMoveSpeed
	}
	e.Options = prefs.Options
	e.Windows = prefs.Windows
	e.selectedModel = prefs.SelectedModel

	if prefs.SceneName == "" {
		return
	}
	for _, name := range e.world.ListScenes(e.log) {
		if name == prefs.SceneName {
			e.LoadScene(name)
			return
		}
	}
}
