package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"worldedit/internal/engine"
	"worldedit/internal/logs"
	"worldedit/internal/world"
)

func newTestStore(t *testing.T, ids ...int) *world.Store {
	t.Helper()
	store := world.NewStore(t.TempDir())
	ref := store.Ref("level")
	var objects []*engine.WorldObject
	for _, id := range ids {
		o, err := engine.NewEmpty(id, "Axis", "Models/Axis.glb", ref)
		if err != nil {
			t.Fatalf("NewEmpty(%d): %v", id, err)
		}
		objects = append(objects, o)
	}
	if err := store.Export(ref, objects, discard()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	return store
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScaffoldWritesScriptAndRecord(t *testing.T) {
	store := newTestStore(t, 0, 1)

	path, err := scaffold(store, "level", 1, "bob", discard())
	if err != nil {
		t.Fatalf("scaffold failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("script not written: %v", err)
	}
	if string(data) != templates["bob"] {
		t.Errorf("unexpected script contents:\n%s", data)
	}

	_, objects := store.Import("level", discard())
	if len(objects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(objects))
	}
	if objects[0].Script.HasSource() {
		t.Errorf("object 0 should have no script")
	}
	if objects[1].Script.Source() != templates["bob"] {
		t.Errorf("object 1 script not imported")
	}
}

func TestScaffoldRefusesExistingScript(t *testing.T) {
	store := newTestStore(t, 0)
	if _, err := scaffold(store, "level", 0, "drift", discard()); err != nil {
		t.Fatalf("first scaffold failed: %v", err)
	}

	_, err := scaffold(store, "level", 0, "orbit", discard())
	if err == nil || !strings.Contains(err.Error(), "already has a script") {
		t.Errorf("Expected existing script error, got %v", err)
	}
}

func TestScaffoldRefusesCorruptScript(t *testing.T) {
	store := newTestStore(t, 0)
	if _, err := scaffold(store, "level", 0, "drift", discard()); err != nil {
		t.Fatalf("first scaffold failed: %v", err)
	}
	path := store.Ref("level").ScriptPath(0)
	if err := os.WriteFile(path, []byte{0xff, 0xfe}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := scaffold(store, "level", 0, "orbit", discard())
	if err == nil || !strings.Contains(err.Error(), "already has a script") {
		t.Errorf("Expected existing script error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "\xff\xfe" {
		t.Errorf("corrupt script was overwritten")
	}
}

func TestScaffoldErrors(t *testing.T) {
	store := newTestStore(t, 0)

	tests := []struct {
		name     string
		scene    string
		id       int
		template string
		want     string
	}{
		{"bad scene name", "../x", 0, "empty", "scene name"},
		{"unknown template", "level", 0, "teleport", "unknown template"},
		{"missing object", "level", 7, "empty", "no object 7"},
		{"missing scene", "other", 0, "empty", "no object 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scaffold(store, tt.scene, tt.id, tt.template, discard())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestTemplatesCompile(t *testing.T) {
	ref := engine.SceneRef{Root: t.TempDir(), Name: "level"}
	for _, name := range templateNames() {
		l := logs.New(10, nil, nil)
		o, err := engine.NewEmpty(0, "Axis", "", ref)
		if err != nil {
			t.Fatal(err)
		}
		o.Script.SetSource(templates[name])
		o.LoadScript(l.Logger())
		if !o.Script.Loaded() {
			t.Errorf("template %s did not compile: %v", name, l.Entries())
		}
	}
}
