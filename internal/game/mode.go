package game

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"worldedit/internal/engine"
)

type Mode int

const (
	ModeEdit Mode = iota
	ModeRun
)

func (m Mode) String() string {
	if m == ModeRun {
		return "run"
	}
	return "edit"
}

// ModeController switches between editing and running the scene. Only a rising
// edge of the toggle key changes the mode, so holding the key does nothing.
type ModeController struct {
	mode       Mode
	prevToggle bool
	workers    int

	// OnChange fires after every transition with the new mode.
	OnChange engine.Event[Mode]
}

// NewModeController starts in edit mode. workers bounds how many objects run
// their scripts at the same time; values below 1 mean 1.
func NewModeController(workers int) *ModeController {
	if workers < 1 {
		workers = 1
	}
	return &ModeController{workers: workers}
}

func (m *ModeController) Mode() Mode {
	return m.mode
}

func (m *ModeController) Running() bool {
	return m.mode == ModeRun
}

// Update samples the toggle level for this tick and flips the mode on a
// released-to-pressed edge. It reports whether the mode changed.
func (m *ModeController) Update(toggleDown bool, objects []*engine.WorldObject, log *slog.Logger) bool {
	edge := toggleDown && !m.prevToggle
	m.prevToggle = toggleDown
	if !edge {
		return false
	}
	m.SetRun(!m.Running(), objects, log)
	return true
}

// SetRun moves to the requested mode. Asking for the current mode is a no-op.
func (m *ModeController) SetRun(run bool, objects []*engine.WorldObject, log *slog.Logger) {
	if run == m.Running() {
		return
	}

	if run {
		for _, o := range objects {
			o.CaptureOrigin()
		}
		for _, o := range objects {
			o.LoadScript(log)
		}
		m.mode = ModeRun
	} else {
		for _, o := range objects {
			o.Reset()
		}
		m.mode = ModeEdit
	}

	log.Info("mode changed", "mode", m.mode.String(), "objects", len(objects))
	m.OnChange.Invoke(m.mode)
}

// RunTick runs every object's script once. It returns after all of them are
// done, so callers may draw or save right away.
func (m *ModeController) RunTick(ctx context.Context, sc engine.ScriptContext, objects []*engine.WorldObject, log *slog.Logger) {
	if !m.Running() {
		return
	}
	if m.workers == 1 || len(objects) < 2 {
		for _, o := range objects {
			o.UpdateGame(ctx, sc, log)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for _, o := range objects {
		g.Go(func() error {
			o.UpdateGame(gctx, sc, log)
			return nil
		})
	}
	_ = g.Wait()
}
