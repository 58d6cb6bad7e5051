package render

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Backend executes queued draw calls with raylib. It owns every loaded model;
// callers only hold references.
type Backend struct {
	log    *slog.Logger
	models map[string]rl.Model
	clear  rl.Color
}

func NewBackend(log *slog.Logger) *Backend {
	return &Backend{
		log:    log,
		models: make(map[string]rl.Model),
		clear:  rl.NewColor(51, 51, 51, 255),
	}
}

// Execute runs load/unload commands, then draws the 3D commands inside the
// camera set by the last CmdSetCamera. It returns the sizes of models loaded by
// this call. Must run between rl.BeginDrawing and rl.EndDrawing.
func (b *Backend) Execute(q *Queue) []ModelSize {
	var sizes []ModelSize
	var camera rl.Camera3D
	hasCamera := false

	for _, c := range q.Calls() {
		switch c.Kind {
		case CmdLoadModel:
			if size, ok := b.loadModel(c.Ref, c.Path); ok {
				sizes = append(sizes, ModelSize{Ref: c.Ref, Size: size})
			}
		case CmdUnloadModel:
			b.unloadModel(c.Ref)
		case CmdSetCamera:
			camera = c.Camera
			hasCamera = true
		}
	}

	rl.ClearBackground(b.clear)
	if !hasCamera {
		return sizes
	}

	rl.BeginMode3D(camera)
	rl.DrawGrid(100, 1.0)
	for _, c := range q.Calls() {
		switch c.Kind {
		case CmdDrawModel:
			b.drawModel(c)
		case CmdDrawAxis:
			drawAxis(c.Position, c.Scale.X)
		}
	}
	rl.EndMode3D()

	return sizes
}

func (b *Backend) loadModel(ref, path string) (rl.Vector3, bool) {
	if model, exists := b.models[ref]; exists {
		return boundsSize(model), true
	}
	if _, err := os.Stat(path); err != nil {
		b.log.Error("model load failed", "model", ref, "path", path, "err", err)
		return rl.Vector3{}, false
	}

	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		b.log.Error("model has no meshes", "model", ref, "path", path)
		rl.UnloadModel(model)
		return rl.Vector3{}, false
	}
	b.models[ref] = model
	b.log.Info("model loaded", "model", ref)
	return boundsSize(model), true
}

func (b *Backend) unloadModel(ref string) {
	model, exists := b.models[ref]
	if !exists {
		return
	}
	rl.UnloadModel(model)
	delete(b.models, ref)
	b.log.Info("model unloaded", "model", ref)
}

func (b *Backend) drawModel(c DrawCall) {
	model, exists := b.models[c.Ref]
	if !exists {
		// Not loaded yet: draw a placeholder so the object stays visible.
		rl.DrawCubeWires(c.Position, 1, 1, 1, rl.Orange)
		return
	}
	model.Transform = ModelMatrix(c.Position, c.Rotation, c.Scale)
	rl.DrawModel(model, rl.Vector3Zero(), 1.0, rl.White)
}

func drawAxis(origin rl.Vector3, length float32) {
	rl.DrawLine3D(origin, rl.Vector3Add(origin, rl.Vector3{X: length}), rl.Red)
	rl.DrawLine3D(origin, rl.Vector3Add(origin, rl.Vector3{Y: length}), rl.Green)
	rl.DrawLine3D(origin, rl.Vector3Add(origin, rl.Vector3{Z: length}), rl.Blue)
}

func boundsSize(model rl.Model) rl.Vector3 {
	bounds := rl.GetModelBoundingBox(model)
	return rl.Vector3Subtract(bounds.Max, bounds.Min)
}

// Unload releases every model still held.
func (b *Backend) Unload() {
	for ref, model := range b.models {
		rl.UnloadModel(model)
		delete(b.models, ref)
	}
}
