package game

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"worldedit/internal/camera"
	"worldedit/internal/config"
	"worldedit/internal/engine"
	"worldedit/internal/render"
	"worldedit/internal/world"
)

const (
	nudgeSpeed      = 5.0 // units per second for U/J/O/L and I/K
	saveMsgDuration = 2.0
	savedMsg        = "Scene Saved!"
)

func cameraFromConfig(c config.Camera) camera.Fly {
	return camera.New(rl.Vector3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]}, c.Yaw, c.Pitch, c.MoveSpeed)
}

// Selection is the role the editor is currently acting on.
type Selection int

const (
	SelectNone Selection = iota
	SelectPlacing
	SelectObject
)

func (s Selection) String() string {
	switch s {
	case SelectPlacing:
		return "placing"
	case SelectObject:
		return "object"
	}
	return "none"
}

// Windows tracks which editor windows are open.
type Windows struct {
	SceneDetails bool `json:"sceneDetails"`
	ModelList    bool `json:"modelList"`
	LoadedModels bool `json:"loadedModels"`
	WorldObjects bool `json:"worldObjects"`
	Logs         bool `json:"logs"`

	LoadScene bool `json:"-"`
	Saved     bool `json:"-"`
}

func defaultWindows() Windows {
	return Windows{SceneDetails: true, ModelList: true, LoadedModels: true, WorldObjects: true}
}

// Editor holds the edit-mode state: the camera, what is selected, the object
// being placed and the undo history. It never runs scripts.
type Editor struct {
	world  *world.World
	log    *slog.Logger
	camera camera.Fly

	Options config.Options
	Windows Windows

	selection     Selection
	placing       *engine.WorldObject // pending commit, not part of the scene
	selectedID    int
	selectedModel string
	placingHeight float32
	nudging       bool

	// Save feedback
	saveMsg     string
	saveMsgErr  bool
	saveMsgTime float64
	now         float64

	undoStack []UndoState
}

func NewEditor(w *world.World, cfg config.Editor, log *slog.Logger) *Editor {
	return &Editor{
		world:     w,
		log:       log,
		camera:    cameraFromConfig(cfg.Camera),
		Options:   cfg.Options,
		Windows:   defaultWindows(),
		undoStack: make([]UndoState, 0, maxUndoStack),
	}
}

func (e *Editor) World() *world.World {
	return e.world
}

func (e *Editor) Camera() camera.Fly {
	return e.camera
}

func (e *Editor) Selection() Selection {
	return e.selection
}

// Placing returns the object waiting to be committed, if any.
func (e *Editor) Placing() *engine.WorldObject {
	return e.placing
}

// Selected returns the selected scene object, if any.
func (e *Editor) Selected() *engine.WorldObject {
	if e.selection != SelectObject {
		return nil
	}
	return e.world.Scene.Find(e.selectedID)
}

func (e *Editor) SelectedModel() string {
	return e.selectedModel
}

func (e *Editor) PlacingHeight() float32 {
	return e.placingHeight
}

// --- Selection ---

// Select makes the object with id the edit target and drops any placement.
func (e *Editor) Select(id int) bool {
	if e.world.Scene.Find(id) == nil {
		return false
	}
	e.placing = nil
	e.selection = SelectObject
	e.selectedID = id
	e.nudging = false
	return true
}

func (e *Editor) ClearSelection() {
	e.placing = nil
	e.selection = SelectNone
	e.nudging = false
}

// SelectModel picks the loaded model used for placement. A placement in
// progress switches to the new model.
func (e *Editor) SelectModel(ref string) {
	if ref == e.selectedModel {
		return
	}
	e.selectedModel = ref
	if e.placing != nil {
		e.StartPlacing()
	}
}

// --- Placement ---

// StartPlacing fills the placement slot with a fresh object of the selected
// model. It fails when no model is loaded.
func (e *Editor) StartPlacing() bool {
	loaded := e.world.LoadedModels()
	if len(loaded) == 0 {
		e.log.Info("no model loaded to place")
		e.ClearSelection()
		return false
	}
	if _, ok := e.world.ModelSize(e.selectedModel); !ok {
		e.selectedModel = loaded[0]
	}
	path, _ := e.world.ModelPath(e.selectedModel)

	o, err := engine.NewEmpty(e.world.Scene.NextID(), e.selectedModel, path, e.world.Scene.Ref)
	if err != nil {
		e.log.Error("start placing failed", "err", err)
		e.ClearSelection()
		return false
	}
	if e.placing != nil {
		o.SetPosition(e.placing.Position())
	}
	e.placing = o
	e.selection = SelectPlacing
	return true
}

func (e *Editor) CancelPlacing() {
	if e.placing == nil {
		return
	}
	e.ClearSelection()
}

// Commit moves the placement object into the scene.
func (e *Editor) Commit() bool {
	o := e.placing
	if o == nil {
		return false
	}
	if err := e.world.Scene.Add(o); err != nil {
		e.log.Error("place object failed", "err", err)
		return false
	}
	e.pushPlaceUndo(o)
	e.ClearSelection()
	return true
}

// PlacementPoint intersects ray with the horizontal plane at height.
func PlacementPoint(ray rl.Ray, height float32) (rl.Vector3, bool) {
	if ray.Direction.Y > -1e-6 && ray.Direction.Y < 1e-6 {
		return rl.Vector3{}, false
	}
	t := (height - ray.Position.Y) / ray.Direction.Y
	if t < 0 {
		return rl.Vector3{}, false
	}
	p := rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t))
	p.Y = height
	return p, true
}

func snap(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Round(float64(v.X))),
		Y: float32(math.Round(float64(v.Y))),
		Z: float32(math.Round(float64(v.Z))),
	}
}

// target is the object the transform keys act on.
func (e *Editor) target() *engine.WorldObject {
	switch e.selection {
	case SelectPlacing:
		return e.placing
	case SelectObject:
		return e.world.Scene.Find(e.selectedID)
	}
	return nil
}

// --- Object edits ---

// DeleteObject removes an object together with its script file.
func (e *Editor) DeleteObject(id int) bool {
	s := e.world.Scene
	idx := s.Index(id)
	if idx < 0 {
		return false
	}
	o := s.Objects[idx]
	o.DeleteScript(e.log)
	s.Remove(id)
	e.pushDeleteUndo(o, idx)
	if e.selection == SelectObject && e.selectedID == id {
		e.ClearSelection()
	}
	e.log.Info("object deleted", "object", id, "name", o.Name)
	return true
}

// SetScript replaces the script text of an object and optionally writes it.
func (e *Editor) SetScript(id int, src string, save bool) bool {
	o := e.world.Scene.Find(id)
	if o == nil {
		return false
	}
	o.Update(engine.EditInput{Source: &src, SaveScript: save, Scene: e.world.Scene.Ref}, e.log)
	return true
}

// --- Scene operations ---

// SaveScene writes all scripts and the object records.
func (e *Editor) SaveScene() error {
	if err := e.world.Save(e.log); err != nil {
		e.setMsg("Save failed: %v", err)
		e.saveMsgErr = true
		return err
	}
	e.setMsg(savedMsg)
	e.Windows.Saved = true
	return nil
}

func (e *Editor) LoadScene(name string) {
	e.resetEditState()
	e.world.Load(name, e.log)
	e.setMsg("Loaded %s", name)
}

func (e *Editor) NewScene() {
	e.resetEditState()
	e.world.NewScene()
}

// DeleteCurrentScene removes the open scene from disk and clears the editor.
func (e *Editor) DeleteCurrentScene() {
	e.resetEditState()
	e.world.DeleteScene(e.world.Scene.Ref.Name, e.log)
	e.world.NewScene()
}

func (e *Editor) RenameScene(name string) error {
	if err := e.world.Rename(name); err != nil {
		e.log.Error("rename scene failed", "err", err)
		return err
	}
	return nil
}

func (e *Editor) resetEditState() {
	e.ClearSelection()
	e.placingHeight = 0
	e.undoStack = e.undoStack[:0]
}

// OnModeChange drops edit-only state when the scene starts running, so no
// object can be placed or selected while scripts execute.
func (e *Editor) OnModeChange(m Mode) {
	if m == ModeRun {
		e.ClearSelection()
	}
}

func (e *Editor) setMsg(format string, args ...any) {
	e.saveMsg = fmt.Sprintf(format, args...)
	e.saveMsgErr = false
	e.saveMsgTime = e.now
}

// Message returns the flash message while it is still visible, and whether it
// reports a failure.
func (e *Editor) Message() (msg string, failed, ok bool) {
	if e.saveMsg == "" || e.now-e.saveMsgTime >= saveMsgDuration {
		return "", false, false
	}
	return e.saveMsg, e.saveMsgErr, true
}

// --- Tick ---

// Update applies one tick of edit-mode input.
func (e *Editor) Update(in Input) {
	e.now = in.Time

	if e.selection == SelectObject && e.world.Scene.Find(e.selectedID) == nil {
		e.ClearSelection()
	}

	if in.Undo {
		e.undo()
	}
	if in.Save {
		e.SaveScene()
	}
	if in.ToggleSnap {
		e.Options.SnapToGrid = !e.Options.SnapToGrid
	}

	e.camera.Update(camera.Controls{
		DeltaTime:    in.DeltaTime,
		Look:         in.RightDown,
		MouseDelta:   in.MouseDelta,
		Forward:      in.Forward,
		Back:         in.Back,
		Left:         in.Left,
		Right:        in.Right,
		Up:           in.Up,
		Down:         in.Down,
		Wheel:        in.Wheel,
		SpeedMod:     in.Shift,
		WheelBlocked: in.OverUI,
	})

	if in.RightPressed && !in.OverUI {
		e.ClearSelection()
	}
	if in.StartPlacing {
		e.StartPlacing()
	}

	e.updateTarget(in)

	if in.LeftPressed && !in.OverUI {
		if !e.Commit() {
			e.ClearSelection()
		}
	}
}

func (e *Editor) updateTarget(in Input) {
	o := e.target()
	if o == nil {
		e.nudging = false
		return
	}

	step := nudgeSpeed * in.DeltaTime
	move := rl.Vector3Scale(in.NudgeDir(), step)
	if e.Options.PlaceWithMouse {
		e.placingHeight += in.HeightDir() * step
	} else {
		move.Y += in.HeightDir() * step
	}

	nudging := move != (rl.Vector3{})
	if nudging && !e.nudging && e.selection == SelectObject {
		e.pushUndo(o)
	}
	e.nudging = nudging

	var placeAt *rl.Vector3
	if e.selection == SelectPlacing && e.Options.PlaceWithMouse && !in.OverUI {
		if p, ok := PlacementPoint(in.Ray, e.placingHeight); ok {
			if e.Options.SnapToGrid {
				p = snap(p)
			}
			placeAt = &p
		}
	}

	o.Update(engine.EditInput{PlaceAt: placeAt, Move: move}, e.log)
}

func (e *Editor) GetRaylibCamera() rl.Camera3D {
	return e.camera.GetRaylibCamera()
}

// Draw queues the camera, the visible scene objects and, in edit mode, the
// placement object and the origin axis.
func (e *Editor) Draw(q *render.Queue, aspect float32, running bool) {
	cam := e.GetRaylibCamera()
	q.SetCamera(cam)
	e.world.Draw(q, render.ExtractFrustum(cam, aspect), e.Options.ShowAxis && !running)
	if e.placing != nil && !running {
		e.placing.Draw(q)
	}
}
