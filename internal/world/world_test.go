package world

import (
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldedit/internal/assets"
	"worldedit/internal/engine"
	"worldedit/internal/logs"
	"worldedit/internal/render"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "Scenes"), assets.NewCatalog(filepath.Join(dir, "Models")))
}

func addToWorld(t *testing.T, w *World, model string, pos rl.Vector3) *engine.WorldObject {
	t.Helper()
	o := newObject(t, w.Scene.Ref, w.Scene.NextID(), model, pos)
	require.NoError(t, w.Scene.Add(o))
	return o
}

func TestWorldSaveLoadQueuesModels(t *testing.T) {
	l := logs.New(20, nil, nil)
	w := newTestWorld(t)
	require.NoError(t, w.Rename("level1"))
	addToWorld(t, w, "Axis", rl.Vector3{X: 1})
	addToWorld(t, w, "Tree", rl.Vector3{X: 2})
	require.NoError(t, w.Save(l.Logger()))

	w.NewScene()
	require.Equal(t, engine.DefaultSceneName, w.Scene.Ref.Name)
	require.Zero(t, w.Scene.Len())

	w.Load("level1", l.Logger())

	assert.Equal(t, "level1", w.Scene.Ref.Name)
	assert.Equal(t, 2, w.Scene.Len())
	assert.Equal(t, 2, w.Scene.NextID())
	load, _ := w.Catalog.Drain()
	require.Len(t, load, 2)
	assert.Equal(t, "Axis", load[0].Ref)
	assert.Equal(t, "Tree", load[1].Ref)
	assert.Equal(t, []string{"level1"}, w.ListScenes(l.Logger()))
}

func TestWorldRenameRejectsBadName(t *testing.T) {
	w := newTestWorld(t)
	assert.Error(t, w.Rename("a/b"))
	assert.Equal(t, engine.DefaultSceneName, w.Scene.Ref.Name)
}

func TestWorldDeleteOpenSceneClearsEditor(t *testing.T) {
	l := logs.New(20, nil, nil)
	w := newTestWorld(t)
	require.NoError(t, w.Rename("doomed"))
	addToWorld(t, w, "Axis", rl.Vector3{})
	require.NoError(t, w.Save(l.Logger()))

	w.DeleteScene("doomed", l.Logger())

	assert.Equal(t, engine.DefaultSceneName, w.Scene.Ref.Name)
	assert.Zero(t, w.Scene.Len())
	assert.Empty(t, w.ListScenes(l.Logger()))
}

func TestWorldDeleteOtherSceneKeepsEditor(t *testing.T) {
	l := logs.New(20, nil, nil)
	w := newTestWorld(t)
	require.NoError(t, w.Rename("other"))
	require.NoError(t, w.Save(l.Logger()))
	require.NoError(t, w.Rename("open"))
	addToWorld(t, w, "Axis", rl.Vector3{})

	w.DeleteScene("other", l.Logger())

	assert.Equal(t, "open", w.Scene.Ref.Name)
	assert.Equal(t, 1, w.Scene.Len())
}

func TestWorldDrawCullsAndDrawsAxis(t *testing.T) {
	w := newTestWorld(t)
	addToWorld(t, w, "Axis", rl.Vector3{})
	addToWorld(t, w, "Axis", rl.Vector3{X: 500})

	cam := rl.Camera3D{Position: rl.Vector3{Z: 10}, Up: rl.Vector3{Y: 1}, Fovy: 45, Projection: rl.CameraPerspective}
	q := render.NewQueue()
	w.Draw(q, render.ExtractFrustum(cam, 1), true)

	calls := q.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, render.CmdDrawModel, calls[0].Kind)
	assert.Equal(t, float32(0), calls[0].Position.X)
	assert.Equal(t, render.CmdDrawAxis, calls[1].Kind)

	q.Reset()
	w.Draw(q, render.Frustum{}, false)
	assert.Equal(t, 2, q.Len())
}

func TestWorldModelSizesWidenCulling(t *testing.T) {
	w := newTestWorld(t)
	o := addToWorld(t, w, "Wall", rl.Vector3{X: 12})
	cam := rl.Camera3D{Position: rl.Vector3{Z: 10}, Up: rl.Vector3{Y: 1}, Fovy: 45, Projection: rl.CameraPerspective}
	f := render.ExtractFrustum(cam, 1)

	q := render.NewQueue()
	w.Draw(q, f, false)
	assert.Zero(t, q.Len())

	w.SetModelSizes([]render.ModelSize{{Ref: "Wall", Size: rl.Vector3{X: 20, Y: 4, Z: 1}}})
	size, ok := w.ModelSize("Wall")
	require.True(t, ok)
	assert.Equal(t, float32(20), size.X)

	w.Draw(q, f, false)
	require.Equal(t, 1, q.Len())
	assert.Equal(t, o.ModelRef, q.Calls()[0].Ref)

	w.Forget("Wall")
	_, ok = w.ModelSize("Wall")
	assert.False(t, ok)
}

func TestWorldLoadedModelsAndPaths(t *testing.T) {
	l := logs.New(20, nil, nil)
	w := newTestWorld(t)
	require.NoError(t, w.Rename("paths"))
	addToWorld(t, w, "Rock", rl.Vector3{})
	require.NoError(t, w.Save(l.Logger()))
	w.Load("paths", l.Logger())

	w.SetModelSizes([]render.ModelSize{
		{Ref: "Tree", Size: rl.Vector3{X: 1}},
		{Ref: "Rock", Size: rl.Vector3{X: 1}},
	})
	assert.Equal(t, []string{"Rock", "Tree"}, w.LoadedModels())

	path, ok := w.ModelPath("Rock")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("Models", "Rock.glb"), path)

	_, ok = w.ModelPath("Tree")
	assert.False(t, ok, "not in the catalog and never named by a scene")
}
