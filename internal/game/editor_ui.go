package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"worldedit/internal/logs"
)

// Theme colors - indigo dark theme
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent      = rl.NewColor(108, 99, 255, 255)
	colorAccentLight = rl.NewColor(167, 139, 250, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)

	colorBorder = rl.NewColor(255, 255, 255, 13)
	colorError  = rl.NewColor(255, 120, 120, 255)
	colorOK     = rl.NewColor(100, 220, 100, 255)
)

const (
	menuBarH   = 30
	rowH       = 22
	menuItemW  = 170
	maxLogRows = 12
	maxScripts = 14
)

// initRayguiStyle sets up the indigo dark theme
func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

type menu int

const (
	menuNone menu = iota
	menuFile
	menuOptions
	menuWindows
)

// UIActions are requests from the UI that the game loop carries out, since
// they may need to leave run mode first.
type UIActions struct {
	NewScene    bool
	SaveScene   bool
	LoadScene   string
	DeleteScene bool
	ToggleRun   bool
	Exit        bool
}

// ChangesScene reports whether an action changes the scene on disk or in memory.
func (a UIActions) ChangesScene() bool {
	return a.NewScene || a.SaveScene || a.LoadScene != "" || a.DeleteScene
}

// EditorUI draws the menu bar and editor windows with raygui.
type EditorUI struct {
	logs *logs.Logs

	open        menu
	scenes      []string
	nameBuf     string
	editingName bool
	lineBuf     string
	editingLine bool

	// panels drawn last frame, used to keep clicks away from the 3D view
	panels []rl.Rectangle
}

func NewEditorUI(l *logs.Logs) *EditorUI {
	return &EditorUI{logs: l}
}

// Contains reports whether p was over a menu or window last frame.
func (u *EditorUI) Contains(p rl.Vector2) bool {
	for _, r := range u.panels {
		if rl.CheckCollisionPointRec(p, r) {
			return true
		}
	}
	return false
}

// Typing reports whether a text box has keyboard focus.
func (u *EditorUI) Typing() bool {
	return u.editingName || u.editingLine
}

func (u *EditorUI) panel(r rl.Rectangle) rl.Rectangle {
	u.panels = append(u.panels, r)
	return r
}

// Draw renders the UI for this frame and returns what the user asked for.
func (u *EditorUI) Draw(e *Editor, mode Mode, toggleKey string, screenW, screenH int32) UIActions {
	var act UIActions
	u.panels = u.panels[:0]

	u.drawMenuBar(e, mode, toggleKey, screenW, &act)

	if mode == ModeEdit {
		if e.Windows.SceneDetails {
			u.drawSceneDetails(e, &act)
		}
		if e.Windows.WorldObjects {
			u.drawWorldObjects(e, screenH)
		}
		if e.Windows.ModelList {
			u.drawModelList(e, screenW)
		}
		if e.Windows.LoadedModels {
			u.drawLoadedModels(e, screenH)
		}
		if e.Selected() != nil {
			u.drawScriptEditor(e, screenW, screenH)
		}
	}
	if e.Windows.LoadScene {
		u.drawLoadScene(e, screenW, screenH, &act)
	}
	if e.Windows.Saved {
		u.drawSaved(e, screenW, screenH)
	}
	if u.logs.IsShown() {
		u.drawLogs(screenW, screenH)
	}
	e.Windows.Logs = u.logs.IsShown()

	if msg, failed, ok := e.Message(); ok {
		color := colorOK
		if failed {
			color = colorError
		}
		rl.DrawText(msg, screenW/2-60, menuBarH+8, 16, color)
	}

	// Menus last so they draw on top
	u.drawOpenMenu(e, mode, &act)
	return act
}

func (u *EditorUI) drawMenuBar(e *Editor, mode Mode, toggleKey string, screenW int32, act *UIActions) {
	bar := u.panel(rl.Rectangle{Width: float32(screenW), Height: menuBarH})
	rl.DrawRectangleRec(bar, colorBgDark)
	rl.DrawRectangle(0, menuBarH-1, screenW, 1, colorBorder)

	x := float32(4)
	for _, m := range []struct {
		label string
		menu  menu
	}{
		{"File", menuFile},
		{"Options", menuOptions},
		{"Windows", menuWindows},
	} {
		if gui.Button(rl.Rectangle{X: x, Y: 4, Width: 80, Height: menuBarH - 8}, m.label) {
			if u.open == m.menu {
				u.open = menuNone
			} else {
				u.open = m.menu
			}
		}
		x += 84
	}

	runLabel := fmt.Sprintf("Run (%s)", toggleKey)
	if mode == ModeRun {
		runLabel = fmt.Sprintf("Stop (%s)", toggleKey)
	}
	if gui.Button(rl.Rectangle{X: x, Y: 4, Width: 100, Height: menuBarH - 8}, runLabel) {
		act.ToggleRun = true
		u.open = menuNone
	}

	status := fmt.Sprintf("%s  |  %s  |  %d objects", e.world.Scene.Ref.Name, mode, e.world.Scene.Len())
	color := colorTextMuted
	if mode == ModeRun {
		color = colorAccentLight
	}
	rl.DrawText(status, int32(x)+112, 8, 16, color)
	rl.DrawText(fmt.Sprintf("Speed: %.0f", e.camera.MoveSpeed), screenW-110, 8, 16, colorTextMuted)
}

func (u *EditorUI) menuItems(x float32, n int) rl.Rectangle {
	r := u.panel(rl.Rectangle{X: x, Y: menuBarH, Width: menuItemW, Height: float32(n*rowH + 8)})
	gui.Panel(r, "")
	return r
}

func itemRect(r rl.Rectangle, i int) rl.Rectangle {
	return rl.Rectangle{X: r.X + 4, Y: r.Y + 4 + float32(i*rowH), Width: r.Width - 8, Height: rowH - 2}
}

func (u *EditorUI) drawOpenMenu(e *Editor, mode Mode, act *UIActions) {
	switch u.open {
	case menuFile:
		r := u.menuItems(4, 4)
		if gui.Button(itemRect(r, 0), "New") {
			act.NewScene = true
			u.open = menuNone
		}
		if gui.Button(itemRect(r, 1), "Save  Ctrl+S") {
			act.SaveScene = true
			u.open = menuNone
		}
		if gui.Button(itemRect(r, 2), "Load") {
			u.scenes = e.world.ListScenes(e.log)
			e.Windows.LoadScene = true
			u.open = menuNone
		}
		if gui.Button(itemRect(r, 3), "Exit") {
			act.Exit = true
		}

	case menuOptions:
		r := u.menuItems(88, 3)
		e.Options.PlaceWithMouse = gui.CheckBox(checkRect(itemRect(r, 0)), "Mouse Placement", e.Options.PlaceWithMouse)
		e.Options.ShowAxis = gui.CheckBox(checkRect(itemRect(r, 1)), "Show Axis", e.Options.ShowAxis)
		e.Options.SnapToGrid = gui.CheckBox(checkRect(itemRect(r, 2)), "Snap  Ctrl+G", e.Options.SnapToGrid)

	case menuWindows:
		r := u.menuItems(172, 5)
		w := &e.Windows
		w.SceneDetails = gui.CheckBox(checkRect(itemRect(r, 0)), "Scene Details", w.SceneDetails)
		w.ModelList = gui.CheckBox(checkRect(itemRect(r, 1)), "Model List", w.ModelList)
		w.LoadedModels = gui.CheckBox(checkRect(itemRect(r, 2)), "Loaded Models", w.LoadedModels)
		w.WorldObjects = gui.CheckBox(checkRect(itemRect(r, 3)), "World Objects", w.WorldObjects)
		shown := gui.CheckBox(checkRect(itemRect(r, 4)), "Logs", u.logs.IsShown())
		u.logs.SetShown(shown)
	}
}

func checkRect(r rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: r.X + 2, Y: r.Y + 3, Width: rowH - 8, Height: rowH - 8}
}

func (u *EditorUI) drawSceneDetails(e *Editor, act *UIActions) {
	r := u.panel(rl.Rectangle{X: 0, Y: menuBarH + 25, Width: 260, Height: 100})
	if gui.WindowBox(r, "Scene Details") {
		e.Windows.SceneDetails = false
	}

	if !u.editingName {
		u.nameBuf = e.world.Scene.Ref.Name
	}
	gui.Label(rl.Rectangle{X: r.X + 8, Y: r.Y + 30, Width: 90, Height: rowH}, "Scene name:")
	if gui.TextBox(rl.Rectangle{X: r.X + 100, Y: r.Y + 30, Width: r.Width - 108, Height: rowH}, &u.nameBuf, 32, u.editingName) {
		if u.editingName && u.nameBuf != e.world.Scene.Ref.Name {
			e.RenameScene(u.nameBuf)
		}
		u.editingName = !u.editingName
	}
	if gui.Button(rl.Rectangle{X: r.X + 8, Y: r.Y + 62, Width: 120, Height: rowH}, "Delete Scene") {
		act.DeleteScene = true
	}
}

func (u *EditorUI) drawWorldObjects(e *Editor, screenH int32) {
	r := u.panel(rl.Rectangle{X: 0, Y: menuBarH + 135, Width: 220, Height: float32(screenH)/2 - 20})
	if gui.WindowBox(r, "World Objects") {
		e.Windows.WorldObjects = false
	}

	y := r.Y + 30
	if gui.CheckBox(rl.Rectangle{X: r.X + 8, Y: y, Width: 14, Height: 14}, "None", e.Selection() == SelectNone) {
		if e.Selection() != SelectNone {
			e.ClearSelection()
		}
	}
	y += rowH
	if gui.CheckBox(rl.Rectangle{X: r.X + 8, Y: y, Width: 14, Height: 14}, "Placing New (Key 1)", e.Selection() == SelectPlacing) {
		if e.Selection() != SelectPlacing {
			e.StartPlacing()
		}
	}
	y += rowH

	var deleteID = -1
	for _, o := range e.world.Scene.Objects {
		if y+rowH > r.Y+r.Height {
			break
		}
		selected := e.Selection() == SelectObject && e.Selected() == o
		if gui.CheckBox(rl.Rectangle{X: r.X + 8, Y: y, Width: 14, Height: 14}, fmt.Sprintf("%d: %s", o.ID, o.Name), selected) && !selected {
			e.Select(o.ID)
		}
		if selected && gui.Button(rl.Rectangle{X: r.X + r.Width - 68, Y: y - 3, Width: 60, Height: rowH - 2}, "Delete") {
			deleteID = o.ID
		}
		y += rowH
	}
	if deleteID >= 0 {
		e.DeleteObject(deleteID)
	}
}

func (u *EditorUI) drawModelList(e *Editor, screenW int32) {
	cat := e.world.Catalog
	r := u.panel(rl.Rectangle{X: float32(screenW) - 230, Y: menuBarH + 2, Width: 220, Height: 360})
	if gui.WindowBox(r, fmt.Sprintf("Model List %s", cat.Dir())) {
		e.Windows.ModelList = false
	}

	if gui.Button(rl.Rectangle{X: r.X + 8, Y: r.Y + 30, Width: 80, Height: rowH}, "Load All") {
		cat.RequestAll()
	}
	if gui.Button(rl.Rectangle{X: r.X + 96, Y: r.Y + 30, Width: 80, Height: rowH}, "Rescan") {
		cat.Refresh(e.log)
	}

	y := r.Y + 30 + rowH + 6
	for _, m := range cat.Models() {
		if y+rowH > r.Y+r.Height {
			break
		}
		if gui.CheckBox(rl.Rectangle{X: r.X + 8, Y: y, Width: 14, Height: 14}, m.Ref, m.Loaded) && !m.Loaded {
			cat.RequestLoad(m.Ref)
		}
		if m.Loaded && gui.Button(rl.Rectangle{X: r.X + r.Width - 68, Y: y - 3, Width: 60, Height: rowH - 2}, "Unload") {
			cat.RequestUnload(m.Ref)
		}
		y += rowH
	}
}

func (u *EditorUI) drawLoadedModels(e *Editor, screenH int32) {
	r := u.panel(rl.Rectangle{X: 0, Y: float32(screenH)/2 + 130, Width: 220, Height: float32(screenH)/2 - 140})
	if gui.WindowBox(r, "Loaded Models") {
		e.Windows.LoadedModels = false
	}

	y := r.Y + 30
	for _, ref := range e.world.LoadedModels() {
		if y+rowH > r.Y+r.Height {
			break
		}
		label := ref
		if size, ok := e.world.ModelSize(ref); ok {
			label = fmt.Sprintf("%s  %.1fx%.1fx%.1f", ref, size.X, size.Y, size.Z)
		}
		if gui.CheckBox(rl.Rectangle{X: r.X + 8, Y: y, Width: 14, Height: 14}, label, e.SelectedModel() == ref) {
			e.SelectModel(ref)
		}
		y += rowH
	}
}

func (u *EditorUI) drawScriptEditor(e *Editor, screenW, screenH int32) {
	o := e.Selected()
	r := u.panel(rl.Rectangle{X: float32(screenW) - 430, Y: float32(screenH) - 420, Width: 420, Height: 410})
	if gui.WindowBox(r, fmt.Sprintf("%d: %s  script", o.ID, o.Name)) {
		e.ClearSelection()
		u.editingLine = false
		return
	}

	pos := o.Position()
	gui.Label(rl.Rectangle{X: r.X + 8, Y: r.Y + 28, Width: r.Width - 16, Height: rowH},
		fmt.Sprintf("pos (%.2f, %.2f, %.2f)  script %s", pos.X, pos.Y, pos.Z, o.Script.State()))

	y := r.Y + 28 + rowH
	lines := ScriptLines(o.Script.Source())
	start := 0
	if len(lines) > maxScripts {
		start = len(lines) - maxScripts
	}
	for i := start; i < len(lines); i++ {
		rl.DrawText(fmt.Sprintf("%3d  %s", i+1, lines[i]), int32(r.X)+8, int32(y)+4, 14, colorTextSecondary)
		y += 18
	}

	y = r.Y + r.Height - 2*rowH - 14
	if gui.TextBox(rl.Rectangle{X: r.X + 8, Y: y, Width: r.Width - 100, Height: rowH}, &u.lineBuf, 256, u.editingLine) {
		if u.editingLine && u.lineBuf != "" {
			e.SetScript(o.ID, AppendScriptLine(o.Script.Source(), u.lineBuf), false)
			u.lineBuf = ""
		}
		u.editingLine = !u.editingLine
	}
	if gui.Button(rl.Rectangle{X: r.X + r.Width - 88, Y: y, Width: 80, Height: rowH}, "Add Line") && u.lineBuf != "" {
		e.SetScript(o.ID, AppendScriptLine(o.Script.Source(), u.lineBuf), false)
		u.lineBuf = ""
	}

	y += rowH + 6
	if gui.Button(rl.Rectangle{X: r.X + 8, Y: y, Width: 100, Height: rowH}, "Remove Line") {
		e.SetScript(o.ID, DropLastScriptLine(o.Script.Source()), false)
	}
	if gui.Button(rl.Rectangle{X: r.X + 116, Y: y, Width: 80, Height: rowH}, "Clear") {
		e.SetScript(o.ID, "", false)
	}
	if gui.Button(rl.Rectangle{X: r.X + r.Width - 118, Y: y, Width: 110, Height: rowH}, "Save Script") {
		e.SetScript(o.ID, o.Script.Source(), true)
	}
}

func (u *EditorUI) drawLoadScene(e *Editor, screenW, screenH int32, act *UIActions) {
	h := float32(60 + rowH*max(len(u.scenes), 1))
	r := u.panel(rl.Rectangle{X: float32(screenW)/2 - 150, Y: float32(screenH)/2 - h/2, Width: 300, Height: h})
	if gui.WindowBox(r, "Load Scene") {
		e.Windows.LoadScene = false
		return
	}
	if len(u.scenes) == 0 {
		gui.Label(rl.Rectangle{X: r.X + 8, Y: r.Y + 30, Width: r.Width - 16, Height: rowH}, "No saved scenes")
		return
	}
	for i, name := range u.scenes {
		if gui.Button(rl.Rectangle{X: r.X + 8, Y: r.Y + 30 + float32(i*rowH), Width: r.Width - 16, Height: rowH - 2}, name) {
			act.LoadScene = name
			e.Windows.LoadScene = false
		}
	}
}

func (u *EditorUI) drawSaved(e *Editor, screenW, screenH int32) {
	r := u.panel(rl.Rectangle{X: float32(screenW) / 2, Y: float32(screenH) / 2, Width: 200, Height: 100})
	if gui.WindowBox(r, savedMsg) {
		e.Windows.Saved = false
	}
	if gui.Button(rl.Rectangle{X: r.X + 70, Y: r.Y + 50, Width: 60, Height: rowH}, "Ok") {
		e.Windows.Saved = false
	}
}

func (u *EditorUI) drawLogs(screenW, screenH int32) {
	w := float32(screenW) / 2
	r := u.panel(rl.Rectangle{X: (float32(screenW) - w) / 2, Y: float32(screenH) - float32(maxLogRows*18) - 70, Width: w, Height: float32(maxLogRows*18) + 60})
	if gui.WindowBox(r, fmt.Sprintf("Logs (%d errors)", u.logs.Errors())) {
		u.logs.SetShown(false)
		return
	}
	if gui.Button(rl.Rectangle{X: r.X + r.Width - 68, Y: r.Y + 28, Width: 60, Height: rowH - 2}, "Clear") {
		u.logs.Clear()
	}

	entries := u.logs.Entries()
	if len(entries) > maxLogRows {
		entries = entries[len(entries)-maxLogRows:]
	}
	y := int32(r.Y) + 30
	for _, entry := range entries {
		color := colorTextSecondary
		if entry.IsError() {
			color = colorError
		}
		rl.DrawText(entry.String(), int32(r.X)+8, y, 14, color)
		y += 18
	}
}
