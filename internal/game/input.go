package game

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is everything the editor reads from the keyboard and mouse in one
// tick. Sampling happens once per tick so the rest of the editor stays
// testable without a window.
type Input struct {
	DeltaTime float32
	Time      float64

	Mouse        rl.Vector2
	MouseDelta   rl.Vector2
	Wheel        float32
	LeftPressed  bool
	LeftDown     bool
	RightPressed bool
	RightDown    bool
	// OverUI is set when the pointer is over an editor window.
	OverUI bool
	// Ray is the pointer ray through the editor camera.
	Ray rl.Ray

	ToggleDown bool

	// Camera fly keys, only honored while the right button is held.
	Forward, Back, Left, Right, Up, Down bool
	Shift                                bool

	// Placement and transform keys.
	StartPlacing bool // 1
	NudgeXPos    bool // U
	NudgeXNeg    bool // J
	NudgeZPos    bool // O
	NudgeZNeg    bool // L
	RaiseY       bool // I
	LowerY       bool // K

	Undo       bool // Ctrl+Z
	Save       bool // Ctrl+S
	ToggleSnap bool // Ctrl+G

	WindowW int32
	WindowH int32
}

// NudgeDir returns the unit X/Z direction of the held nudge keys.
func (in Input) NudgeDir() rl.Vector3 {
	var v rl.Vector3
	if in.NudgeXPos {
		v.X++
	}
	if in.NudgeXNeg {
		v.X--
	}
	if in.NudgeZPos {
		v.Z++
	}
	if in.NudgeZNeg {
		v.Z--
	}
	return v
}

// HeightDir is +1, -1 or 0 for the held height keys.
func (in Input) HeightDir() float32 {
	var d float32
	if in.RaiseY {
		d++
	}
	if in.LowerY {
		d--
	}
	return d
}

var keyNames = map[string]int32{
	"F1": rl.KeyF1, "F2": rl.KeyF2, "F3": rl.KeyF3, "F4": rl.KeyF4,
	"F5": rl.KeyF5, "F6": rl.KeyF6, "F7": rl.KeyF7, "F8": rl.KeyF8,
	"F9": rl.KeyF9, "F10": rl.KeyF10, "F11": rl.KeyF11, "F12": rl.KeyF12,
	"SPACE": rl.KeySpace, "ENTER": rl.KeyEnter, "TAB": rl.KeyTab,
	"P": rl.KeyP, "R": rl.KeyR, "G": rl.KeyG,
}

// KeyCode maps a configured key name such as "F6" to a raylib key code.
func KeyCode(name string) (int32, error) {
	code, ok := keyNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return code, nil
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper)
}

// SampleInput reads raylib's input state for this frame. While typing into a
// text box only the mouse and the run toggle are reported.
func SampleInput(cam rl.Camera3D, toggleKey int32, overUI, typing bool) Input {
	mouse := rl.GetMousePosition()
	ctrl := ctrlDown()
	in := Input{
		DeltaTime: rl.GetFrameTime(),
		Time:      rl.GetTime(),

		Mouse:        mouse,
		MouseDelta:   rl.GetMouseDelta(),
		Wheel:        rl.GetMouseWheelMove(),
		LeftPressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		LeftDown:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		RightPressed: rl.IsMouseButtonPressed(rl.MouseRightButton),
		RightDown:    rl.IsMouseButtonDown(rl.MouseRightButton),
		OverUI:       overUI,
		Ray:          rl.GetScreenToWorldRay(mouse, cam),

		ToggleDown: rl.IsKeyDown(toggleKey),

		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
		Up:      rl.IsKeyDown(rl.KeyE),
		Down:    rl.IsKeyDown(rl.KeyQ),
		Shift:   rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),

		StartPlacing: rl.IsKeyPressed(rl.KeyOne),
		NudgeXPos:    rl.IsKeyDown(rl.KeyU),
		NudgeXNeg:    rl.IsKeyDown(rl.KeyJ),
		NudgeZPos:    rl.IsKeyDown(rl.KeyO),
		NudgeZNeg:    rl.IsKeyDown(rl.KeyL),
		RaiseY:       rl.IsKeyDown(rl.KeyI),
		LowerY:       rl.IsKeyDown(rl.KeyK),

		Undo:       ctrl && rl.IsKeyPressed(rl.KeyZ),
		Save:       ctrl && rl.IsKeyPressed(rl.KeyS),
		ToggleSnap: ctrl && rl.IsKeyPressed(rl.KeyG),

		WindowW: int32(rl.GetScreenWidth()),
		WindowH: int32(rl.GetScreenHeight()),
	}
	if typing {
		in.dropKeys()
	}
	return in
}

// dropKeys clears every keyboard intent except the run toggle.
func (in *Input) dropKeys() {
	in.Forward, in.Back, in.Left, in.Right, in.Up, in.Down, in.Shift = false, false, false, false, false, false, false
	in.StartPlacing = false
	in.NudgeXPos, in.NudgeXNeg, in.NudgeZPos, in.NudgeZNeg = false, false, false, false
	in.RaiseY, in.LowerY = false, false
	in.Undo, in.Save, in.ToggleSnap = false, false, false
}
