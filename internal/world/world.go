package world

import (
	"fmt"
	"log/slog"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"worldedit/internal/assets"
	"worldedit/internal/engine"
	"worldedit/internal/render"
)

// AxisLength is the length of the origin axis lines.
const AxisLength = 10.0

// World owns the scene being edited together with the store it is saved to
// and the model catalog its objects draw from.
type World struct {
	Scene   *engine.Scene
	Store   *Store
	Catalog *assets.Catalog

	// sizes holds the bounding box of every model the backend has loaded.
	sizes map[string]rl.Vector3
	// paths remembers model files named by loaded scenes that are not in the
	// catalog.
	paths map[string]string
}

func New(scenesDir string, catalog *assets.Catalog) *World {
	return &World{
		Scene:   engine.NewScene(scenesDir),
		Store:   NewStore(scenesDir),
		Catalog: catalog,
		sizes:   make(map[string]rl.Vector3),
		paths:   make(map[string]string),
	}
}

// Save exports the current scene under its name.
func (w *World) Save(log *slog.Logger) error {
	return w.Store.Export(w.Scene.Ref, w.Scene.Objects, log)
}

// Load replaces the scene with the one stored under name and queues the
// models it needs.
func (w *World) Load(name string, log *slog.Logger) {
	requests, objects := w.Store.Import(name, log)
	w.Scene.Replace(name, objects)
	for _, r := range requests {
		w.paths[r.Ref] = r.Path
	}
	w.Catalog.Enqueue(requests)
}

// NewScene discards every object and starts an unsaved default scene.
func (w *World) NewScene() {
	w.Scene.Replace(engine.DefaultSceneName, nil)
}

// Rename changes the scene name. Scripts follow on the next save.
func (w *World) Rename(name string) error {
	if err := ValidateSceneName(name); err != nil {
		return fmt.Errorf("rename scene: %w", err)
	}
	w.Scene.Rename(name)
	return nil
}

// DeleteScene removes the stored scene called name. Deleting the open scene
// also clears the editor.
func (w *World) DeleteScene(name string, log *slog.Logger) {
	w.Store.DeleteScene(name, log)
	if name == w.Scene.Ref.Name {
		w.NewScene()
	}
}

// ListScenes returns the scenes available to load.
func (w *World) ListScenes(log *slog.Logger) []string {
	return w.Store.ListScenes(log)
}

// SetModelSizes records bounds reported by the render backend.
func (w *World) SetModelSizes(sizes []render.ModelSize) {
	for _, s := range sizes {
		w.sizes[s.Ref] = s.Size
		w.Catalog.MarkLoaded(s.Ref)
	}
}

// ModelSize returns the bounding box of a loaded model.
func (w *World) ModelSize(ref string) (rl.Vector3, bool) {
	size, ok := w.sizes[ref]
	return size, ok
}

// LoadedModels returns the references of every loaded model, sorted.
func (w *World) LoadedModels() []string {
	refs := make([]string, 0, len(w.sizes))
	for ref := range w.sizes {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// ModelPath resolves the file of a model reference, preferring the catalog.
func (w *World) ModelPath(ref string) (string, bool) {
	if m, ok := w.Catalog.Lookup(ref); ok {
		return m.Path, true
	}
	path, ok := w.paths[ref]
	return path, ok
}

// Forget drops the bounds of an unloaded model.
func (w *World) Forget(ref string) {
	delete(w.sizes, ref)
}

// boundingRadius is the radius of the sphere enclosing the scaled model
// bounds. Models without known bounds get a unit radius.
func (w *World) boundingRadius(o *engine.WorldObject) float32 {
	size, ok := w.sizes[o.ModelRef]
	if !ok {
		size = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	scaled := rl.Vector3Multiply(size, o.Transform.Scale)
	return rl.Vector3Length(scaled) / 2
}

// Draw queues every object the camera can see, followed by the origin axis.
func (w *World) Draw(q *render.Queue, frustum render.Frustum, showAxis bool) {
	for _, o := range w.Scene.Objects {
		if !frustum.ContainsSphere(o.Position(), w.boundingRadius(o)) {
			continue
		}
		o.Draw(q)
	}
	if showAxis {
		q.DrawAxis(rl.Vector3Zero(), AxisLength)
	}
}
