package game

import (
	"context"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldedit/internal/engine"
	"worldedit/internal/logs"
)

func scriptedObjects(t *testing.T, n int, src string) []*engine.WorldObject {
	t.Helper()
	ref := engine.SceneRef{Root: t.TempDir(), Name: "demo"}
	objects := make([]*engine.WorldObject, 0, n)
	for i := 0; i < n; i++ {
		o, err := engine.NewEmpty(i, "Axis", "", ref)
		require.NoError(t, err)
		if src != "" {
			o.Script.SetSource(src)
		}
		objects = append(objects, o)
	}
	return objects
}

func TestModeToggleOnRisingEdgeOnly(t *testing.T) {
	l := logs.New(20, nil, nil)
	m := NewModeController(1)

	steps := []struct {
		down    bool
		changed bool
		mode    Mode
	}{
		{false, false, ModeEdit},
		{true, true, ModeRun},
		{true, false, ModeRun}, // held
		{true, false, ModeRun},
		{false, false, ModeRun},
		{true, true, ModeEdit},
		{false, false, ModeEdit},
	}
	for i, s := range steps {
		changed := m.Update(s.down, nil, l.Logger())
		assert.Equal(t, s.changed, changed, "step %d", i)
		assert.Equal(t, s.mode, m.Mode(), "step %d", i)
	}
}

func TestModeSetRunSameModeIsNoop(t *testing.T) {
	l := logs.New(20, nil, nil)
	m := NewModeController(1)
	objects := scriptedObjects(t, 1, "x = = 1")

	m.SetRun(true, objects, l.Logger())
	m.SetRun(true, objects, l.Logger())

	assert.Equal(t, 1, l.Errors(), "broken script compiled once")
	assert.True(t, m.Running())
}

func TestModeLeavingRunRestoresTransforms(t *testing.T) {
	l := logs.New(20, nil, nil)
	m := NewModeController(1)
	objects := scriptedObjects(t, 1, "x = x + 1\nz = z - 2")
	objects[0].SetPosition(rl.Vector3{X: 5})

	m.SetRun(true, objects, l.Logger())
	m.RunTick(context.Background(), engine.ScriptContext{}, objects, l.Logger())
	m.RunTick(context.Background(), engine.ScriptContext{}, objects, l.Logger())
	assert.Equal(t, rl.Vector3{X: 7, Z: -4}, objects[0].Position())

	m.SetRun(false, objects, l.Logger())
	assert.Equal(t, rl.Vector3{X: 5}, objects[0].Position())
	assert.False(t, objects[0].Script.Loaded())
	assert.Zero(t, l.Errors())
}

func TestModeScriptStateDoesNotSurviveReset(t *testing.T) {
	l := logs.New(20, nil, nil)
	m := NewModeController(1)
	objects := scriptedObjects(t, 1, "count = (count or 0) + 1\nx = count")

	for round := 0; round < 2; round++ {
		m.SetRun(true, objects, l.Logger())
		m.RunTick(context.Background(), engine.ScriptContext{}, objects, l.Logger())
		assert.Equal(t, float32(1), objects[0].Position().X, "round %d", round)
		m.SetRun(false, objects, l.Logger())
	}
}

func TestModeRunTickIgnoredInEdit(t *testing.T) {
	l := logs.New(20, nil, nil)
	m := NewModeController(1)
	objects := scriptedObjects(t, 1, "x = 100")

	m.RunTick(context.Background(), engine.ScriptContext{}, objects, l.Logger())

	assert.Equal(t, rl.Vector3{}, objects[0].Position())
}

func TestModeParallelMatchesSequential(t *testing.T) {
	const src = "x = x + id * delta_time\ny = y + 1"
	sc := engine.ScriptContext{DeltaTime: 0.5}

	run := func(workers int) []rl.Vector3 {
		l := logs.New(100, nil, nil)
		m := NewModeController(workers)
		objects := scriptedObjects(t, 16, src)
		m.SetRun(true, objects, l.Logger())
		for i := 0; i < 3; i++ {
			m.RunTick(context.Background(), sc, objects, l.Logger())
		}
		require.Zero(t, l.Errors())

		out := make([]rl.Vector3, len(objects))
		for i, o := range objects {
			out[i] = o.Position()
		}
		return out
	}

	seq := run(1)
	par := run(4)
	assert.Equal(t, seq, par)
	assert.Equal(t, rl.Vector3{X: 7.5, Y: 3}, seq[5])
}

func TestModeOnChangeFires(t *testing.T) {
	l := logs.New(20, nil, nil)
	m := NewModeController(0)
	var got []Mode
	m.OnChange.AddListener(func(mode Mode) { got = append(got, mode) })

	m.SetRun(true, nil, l.Logger())
	m.SetRun(true, nil, l.Logger())
	m.SetRun(false, nil, l.Logger())

	assert.Equal(t, []Mode{ModeRun, ModeEdit}, got)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "edit", ModeEdit.String())
	assert.Equal(t, "run", ModeRun.String())
}
