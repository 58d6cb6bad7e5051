package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"worldedit/internal/render"
)

var ErrNegativeID = errors.New("object id must be non-negative")

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// DefaultTransform is the origin with unit scale.
func DefaultTransform() Transform {
	return Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

// WorldObject is a placeable scene entity with an optional script.
type WorldObject struct {
	ID        int
	Name      string
	ModelRef  string
	ModelPath string
	Transform Transform
	Script    *ScriptBinding

	origin Transform
}

// NewEmpty builds a placement object: default transform, no compiled script,
// script path bound to the given scene.
func NewEmpty(id int, modelRef, modelPath string, scene SceneRef) (*WorldObject, error) {
	if id < 0 {
		return nil, fmt.Errorf("new object %d: %w", id, ErrNegativeID)
	}
	t := DefaultTransform()
	return &WorldObject{
		ID:        id,
		Name:      modelRef,
		ModelRef:  modelRef,
		ModelPath: modelPath,
		Transform: t,
		Script:    NewScriptBinding(scene.ScriptPath(id)),
		origin:    t,
	}, nil
}

func (o *WorldObject) Position() rl.Vector3 {
	return o.Transform.Position
}

// SetPosition applies no snapping or bounds; callers own that policy.
func (o *WorldObject) SetPosition(v rl.Vector3) {
	o.Transform.Position = v
}

// Origin returns the transform captured when Run mode was entered.
func (o *WorldObject) Origin() Transform {
	return o.origin
}

// CaptureOrigin records the current transform so Reset can restore it.
func (o *WorldObject) CaptureOrigin() {
	o.origin = o.Transform
}

func (o *WorldObject) logger(log *slog.Logger) *slog.Logger {
	return log.With("object", o.ID, "name", o.Name)
}

// LoadScript compiles the object's script unless it is already loaded.
// Failures are logged and leave the binding unloaded.
func (o *WorldObject) LoadScript(log *slog.Logger) {
	o.Script.load(o.logger(log))
}

// SaveScript writes the script source under the given scene. Failures are
// logged, never returned.
func (o *WorldObject) SaveScript(scene SceneRef, log *slog.Logger) {
	o.Script.save(scene.ScriptPath(o.ID), o.logger(log))
}

// DeleteScript removes the script file. A missing file is logged.
func (o *WorldObject) DeleteScript(log *slog.Logger) {
	o.Script.remove(o.logger(log))
}

// Reset restores the captured transform and discards the compiled script
// together with its script-local state.
func (o *WorldObject) Reset() {
	o.Transform = o.origin
	o.Script.unload()
}

// EditInput carries intents already resolved by the editor for one tick.
type EditInput struct {
	PlaceAt    *rl.Vector3
	Move       rl.Vector3
	Source     *string
	SaveScript bool
	Scene      SceneRef
}

// Update is the edit mode step. Scripts never run here.
func (o *WorldObject) Update(in EditInput, log *slog.Logger) {
	if in.PlaceAt != nil {
		o.Transform.Position = *in.PlaceAt
	}
	o.Transform.Position = rl.Vector3Add(o.Transform.Position, in.Move)
	if in.Source != nil {
		o.Script.SetSource(*in.Source)
	}
	if in.SaveScript {
		o.SaveScript(in.Scene, log)
	}
}

// UpdateGame is the run mode step. A loaded script runs against the shared
// context; on error the transform is left as it was and the error is logged.
func (o *WorldObject) UpdateGame(ctx context.Context, sc ScriptContext, log *slog.Logger) {
	if !o.Script.Loaded() {
		return
	}
	pos, err := o.Script.run(ctx, sc, o)
	if err != nil {
		o.logger(log).Error("script error", "err", err)
		return
	}
	o.Transform.Position = pos
}

func (o *WorldObject) Draw(q *render.Queue) {
	q.DrawModel(o.ModelRef, o.Transform.Position, o.Transform.Rotation, o.Transform.Scale)
}
