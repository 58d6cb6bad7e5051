// Package render holds the append-only draw command queue the editor fills each
// tick and the raylib backend that executes it.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type CommandKind int

const (
	CmdSetCamera CommandKind = iota
	CmdDrawModel
	CmdDrawAxis
	CmdLoadModel
	CmdUnloadModel
)

func (k CommandKind) String() string {
	switch k {
	case CmdSetCamera:
		return "set_camera"
	case CmdDrawModel:
		return "draw_model"
	case CmdDrawAxis:
		return "draw_axis"
	case CmdLoadModel:
		return "load_model"
	case CmdUnloadModel:
		return "unload_model"
	}
	return "unknown"
}

// DrawCall is one command for the backend. Only the fields relevant to Kind
// are set.
type DrawCall struct {
	Kind     CommandKind
	Ref      string // model reference
	Path     string // model file, CmdLoadModel only
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
	Camera   rl.Camera3D
}

// Queue collects draw calls for one tick.
type Queue struct {
	calls []DrawCall
}

func NewQueue() *Queue {
	return &Queue{calls: make([]DrawCall, 0, 100)}
}

func (q *Queue) Push(c DrawCall) {
	q.calls = append(q.calls, c)
}

func (q *Queue) SetCamera(cam rl.Camera3D) {
	q.Push(DrawCall{Kind: CmdSetCamera, Camera: cam})
}

func (q *Queue) DrawModel(ref string, position, rotation, scale rl.Vector3) {
	q.Push(DrawCall{Kind: CmdDrawModel, Ref: ref, Position: position, Rotation: rotation, Scale: scale})
}

// DrawAxis draws the world axis gizmo at position with the given arm length.
func (q *Queue) DrawAxis(position rl.Vector3, length float32) {
	q.Push(DrawCall{Kind: CmdDrawAxis, Position: position, Scale: rl.Vector3{X: length, Y: length, Z: length}})
}

func (q *Queue) LoadModel(ref, path string) {
	q.Push(DrawCall{Kind: CmdLoadModel, Ref: ref, Path: path})
}

func (q *Queue) UnloadModel(ref string) {
	q.Push(DrawCall{Kind: CmdUnloadModel, Ref: ref})
}

// Calls returns the queued calls in push order.
func (q *Queue) Calls() []DrawCall {
	return q.calls
}

func (q *Queue) Len() int {
	return len(q.calls)
}

// Reset empties the queue keeping its capacity.
func (q *Queue) Reset() {
	q.calls = q.calls[:0]
}

// ModelSize is the metadata fed back after a model finished loading.
type ModelSize struct {
	Ref  string
	Size rl.Vector3
}

// ModelMatrix builds scale -> rotate (X, Y, Z) -> translate.
func ModelMatrix(position, rotation, scale rl.Vector3) rl.Matrix {
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)

	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	transMatrix := rl.MatrixTranslate(position.X, position.Y, position.Z)

	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}
