package game

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"worldedit/internal/assets"
	"worldedit/internal/config"
	"worldedit/internal/engine"
	"worldedit/internal/logs"
	"worldedit/internal/render"
	"worldedit/internal/world"
)

type Game struct {
	World  *world.World
	Editor *Editor
	Mode   *ModeController
	UI     *EditorUI

	cfg       config.Editor
	logs      *logs.Logs
	log       *slog.Logger
	queue     *render.Queue
	toggleKey int32
	quit      bool
}

func New(cfg config.Editor, l *logs.Logs) *Game {
	log := l.Logger()
	w := world.New(cfg.ScenesDir, assets.NewCatalog(cfg.ModelsDir))

	key, err := KeyCode(cfg.RunToggleKey)
	if err != nil {
		log.Error("run toggle key not supported, using F6", "err", err)
		key = rl.KeyF6
		cfg.RunToggleKey = "F6"
	}

	g := &Game{
		World:     w,
		Editor:    NewEditor(w, cfg, log),
		Mode:      NewModeController(cfg.ScriptWorkers),
		UI:        NewEditorUI(l),
		cfg:       cfg,
		logs:      l,
		log:       log,
		queue:     render.NewQueue(),
		toggleKey: key,
	}
	g.Mode.OnChange.AddListener(g.Editor.OnModeChange)
	return g
}

func (g *Game) Run(ctx context.Context) {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(g.cfg.Window.Width, g.cfg.Window.Height, g.cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.cfg.Window.TargetFPS)
	// Escape must not close the editor
	rl.SetExitKey(0)
	initRayguiStyle()

	backend := render.NewBackend(g.log)
	defer backend.Unload()

	g.World.Catalog.Refresh(g.log)
	g.Editor.ApplyPrefs(LoadEditorPrefs(g.cfg.PrefsFile, g.log))
	defer g.Editor.SavePrefs(g.cfg.PrefsFile)

	for !rl.WindowShouldClose() && !g.quit && ctx.Err() == nil {
		mouse := rl.GetMousePosition()
		in := SampleInput(g.Editor.GetRaylibCamera(), g.toggleKey, g.UI.Contains(mouse), g.UI.Typing())
		g.Update(ctx, in)
		g.Draw(backend, in)
	}
	g.Mode.SetRun(false, g.World.Scene.Objects, g.log)
}

// Update advances the scene by one tick: the toggle is sampled first, then
// either every script runs or the editor applies its input.
func (g *Game) Update(ctx context.Context, in Input) {
	objects := g.World.Scene.Objects
	g.Mode.Update(in.ToggleDown, objects, g.log)

	if g.Mode.Running() {
		g.Mode.RunTick(ctx, g.scriptContext(in), objects, g.log)
		return
	}
	g.Editor.Update(in)
}

func (g *Game) scriptContext(in Input) engine.ScriptContext {
	return engine.ScriptContext{
		DeltaTime:  in.DeltaTime,
		MouseX:     in.Mouse.X,
		MouseY:     in.Mouse.Y,
		LeftMouse:  in.LeftDown,
		RightMouse: in.RightDown,
		WindowW:    float32(in.WindowW),
		WindowH:    float32(in.WindowH),
		Budget:     g.cfg.ScriptBudget,
	}
}

// BuildQueue fills the draw queue for this tick: pending model loads and
// unloads first, then the camera and the scene.
func (g *Game) BuildQueue(windowW, windowH int32) *render.Queue {
	q := g.queue
	q.Reset()

	load, unload := g.World.Catalog.Drain()
	for _, ref := range unload {
		q.UnloadModel(ref)
		g.World.Forget(ref)
	}
	for _, r := range load {
		q.LoadModel(r.Ref, r.Path)
	}

	aspect := float32(1)
	if windowH > 0 {
		aspect = float32(windowW) / float32(windowH)
	}
	g.Editor.Draw(q, aspect, g.Mode.Running())
	return q
}

func (g *Game) Draw(backend *render.Backend, in Input) {
	q := g.BuildQueue(in.WindowW, in.WindowH)

	rl.BeginDrawing()
	g.World.SetModelSizes(backend.Execute(q))
	act := g.UI.Draw(g.Editor, g.Mode.Mode(), g.cfg.RunToggleKey, in.WindowW, in.WindowH)
	rl.EndDrawing()

	g.Apply(act)
}

// Apply carries out UI requests. Anything that touches the scene leaves run
// mode first so objects are back at their edit transforms.
func (g *Game) Apply(act UIActions) {
	objects := g.World.Scene.Objects
	if act.ChangesScene() {
		g.Mode.SetRun(false, objects, g.log)
	}
	if act.ToggleRun {
		g.Mode.SetRun(!g.Mode.Running(), objects, g.log)
	}

	switch {
	case act.NewScene:
		g.Editor.NewScene()
	case act.SaveScene:
		g.Editor.SaveScene()
	case act.LoadScene != "":
		g.Editor.LoadScene(act.LoadScene)
	case act.DeleteScene:
		g.Editor.DeleteCurrentScene()
	}

	if act.Exit {
		g.quit = true
	}
}

// Quit reports whether the user asked to exit.
func (g *Game) Quit() bool {
	return g.quit
}
