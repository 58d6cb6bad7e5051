package world

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"worldedit/internal/assets"
	"worldedit/internal/engine"
)

const sceneFileVersion = 1

// --- JSON types ---

type SceneFile struct {
	Version int         `json:"version"`
	Objects []ObjectDef `json:"objects"`
}

// sceneFileIn defers decoding of each record so one bad record does not sink
// the whole scene.
type sceneFileIn struct {
	Version int               `json:"version"`
	Objects []json.RawMessage `json:"objects"`
}

type ObjectDef struct {
	ID        *int       `json:"id"`
	Name      string     `json:"name"`
	Model     string     `json:"model"`
	ModelPath string     `json:"model_path"`
	Position  [3]float32 `json:"position"`
	Rotation  [3]float32 `json:"rotation"`
	Scale     [3]float32 `json:"scale"`
	Script    string     `json:"script,omitempty"`
}

// Store reads and writes scenes under one root directory.
type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) Ref(name string) engine.SceneRef {
	return engine.SceneRef{Root: s.Root, Name: name}
}

// ValidateSceneName rejects names that would escape the scenes root.
func ValidateSceneName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("scene name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("scene name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("scene name %q contains a path separator", name)
	}
	return nil
}

// --- Saving ---

// Export writes every object record and script of the scene, replacing
// whatever was stored under that name before. Failures are logged and also
// returned so the caller can report them.
func (s *Store) Export(ref engine.SceneRef, objects []*engine.WorldObject, log *slog.Logger) error {
	log = log.With("scene", ref.Name)
	if err := s.export(ref, objects, log); err != nil {
		log.Error("scene export failed", "err", err)
		return err
	}
	log.Info("scene saved", "objects", len(objects))
	return nil
}

func (s *Store) export(ref engine.SceneRef, objects []*engine.WorldObject, log *slog.Logger) error {
	if err := ValidateSceneName(ref.Name); err != nil {
		return err
	}
	if err := os.MkdirAll(ref.Dir(), 0755); err != nil {
		return fmt.Errorf("create scene dir: %w", err)
	}

	sf := SceneFile{Version: sceneFileVersion, Objects: make([]ObjectDef, 0, len(objects))}
	keep := make(map[string]bool, len(objects))

	for _, o := range objects {
		o.SaveScript(ref, log)

		id := o.ID
		def := ObjectDef{
			ID:        &id,
			Name:      o.Name,
			Model:     o.ModelRef,
			ModelPath: o.ModelPath,
			Position:  vec(o.Transform.Position),
			Rotation:  vec(o.Transform.Rotation),
			Scale:     vec(o.Transform.Scale),
		}
		if o.Script.HasSource() || o.Script.KeepsFile() {
			def.Script = engine.ScriptFile(o.ID)
			keep[def.Script] = true
		}
		sf.Objects = append(sf.Objects, def)
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(ref.ObjectsPath(), data); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	pruneScripts(ref.Dir(), keep, log)
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".objects-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// pruneScripts removes script files of objects that are no longer in the scene.
func pruneScripts(dir string, keep map[string]bool, log *slog.Logger) {
	stale, err := filepath.Glob(filepath.Join(dir, "object_*.lua"))
	if err != nil {
		log.Error("list scripts failed", "dir", dir, "err", err)
		return
	}
	for _, path := range stale {
		if keep[filepath.Base(path)] {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Error("remove stale script failed", "path", path, "err", err)
			continue
		}
		log.Info("stale script removed", "path", path)
	}
}

// --- Loading ---

// Import reads the scene called name. It never fails as a whole: unreadable
// scenes give an empty result, malformed records and broken script files are
// skipped with a log entry. The returned requests list every distinct model
// the objects use, in first-seen order.
func (s *Store) Import(name string, log *slog.Logger) ([]assets.Request, []*engine.WorldObject) {
	log = log.With("scene", name)
	objects := make([]*engine.WorldObject, 0)

	if err := ValidateSceneName(name); err != nil {
		log.Error("scene import failed", "err", err)
		return nil, objects
	}
	ref := s.Ref(name)

	data, err := os.ReadFile(ref.ObjectsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if info, statErr := os.Stat(ref.Dir()); statErr == nil && info.IsDir() {
				return nil, objects
			}
		}
		log.Error("scene import failed", "err", fmt.Errorf("read scene: %w", err))
		return nil, objects
	}

	var sf sceneFileIn
	if err := json.Unmarshal(data, &sf); err != nil {
		log.Error("scene import failed", "err", fmt.Errorf("parse scene: %w", err))
		return nil, objects
	}
	if sf.Version > sceneFileVersion {
		log.Warn("scene written by a newer editor", "version", sf.Version)
	}

	var requests []assets.Request
	seenModel := map[string]bool{}
	seenID := map[int]bool{}

	for i, raw := range sf.Objects {
		def, err := decodeObject(raw)
		if err == nil && seenID[*def.ID] {
			err = fmt.Errorf("duplicate id %d", *def.ID)
		}
		if err != nil {
			log.Error("skipping scene record", "record", i, "err", err)
			continue
		}
		seenID[*def.ID] = true

		o, err := engine.NewEmpty(*def.ID, def.Model, def.ModelPath, ref)
		if err != nil {
			log.Error("skipping scene record", "record", i, "err", err)
			continue
		}
		if def.Name != "" {
			o.Name = def.Name
		}
		o.Transform = engine.Transform{
			Position: toVec(def.Position),
			Rotation: toVec(def.Rotation),
			Scale:    toVec(def.Scale),
		}
		// Default scale to 1 if zero
		if def.Scale == [3]float32{} {
			o.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
		}
		o.CaptureOrigin()

		if def.Script != "" {
			readScript(o, log)
		}

		objects = append(objects, o)
		if !seenModel[def.Model] {
			seenModel[def.Model] = true
			requests = append(requests, assets.Request{Ref: def.Model, Path: def.ModelPath})
		}
	}

	log.Info("scene loaded", "objects", len(objects))
	return requests, objects
}

func decodeObject(raw json.RawMessage) (ObjectDef, error) {
	var def ObjectDef
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return def, fmt.Errorf("decode record: %w", err)
	}
	if def.ID == nil {
		return def, fmt.Errorf("record has no id")
	}
	if *def.ID < 0 {
		return def, fmt.Errorf("record id %d: %w", *def.ID, engine.ErrNegativeID)
	}
	if def.Model == "" {
		return def, fmt.Errorf("record %d has no model", *def.ID)
	}
	return def, nil
}

// readScript attaches the script text named by a record. A missing, unreadable
// or corrupt file leaves the binding empty; files that exist are kept on the
// next save.
func readScript(o *engine.WorldObject, log *slog.Logger) {
	if err := o.Script.Read(); err != nil {
		log.Error("script file unreadable", "object", o.ID, "path", o.Script.Path(), "err", err)
		if !errors.Is(err, fs.ErrNotExist) {
			o.Script.MarkUnusable()
		}
		return
	}
	if !utf8.ValidString(o.Script.Source()) {
		log.Error("script file corrupt", "object", o.ID, "path", o.Script.Path())
		o.Script.MarkUnusable()
	}
}

// --- Listing ---

// ListScenes returns the scene names under the root, sorted. The root is
// created when missing; failures are logged and give an empty list.
func (s *Store) ListScenes(log *slog.Logger) []string {
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		log.Error("create scenes dir failed", "dir", s.Root, "err", err)
		return nil
	}
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		log.Error("list scenes failed", "dir", s.Root, "err", err)
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// DeleteScene removes a scene and all of its scripts.
func (s *Store) DeleteScene(name string, log *slog.Logger) {
	if err := ValidateSceneName(name); err != nil {
		log.Error("delete scene failed", "scene", name, "err", err)
		return
	}
	dir := s.Ref(name).Dir()
	if _, err := os.Stat(dir); err != nil {
		log.Info("no scene to delete", "scene", name)
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Error("delete scene failed", "scene", name, "err", err)
		return
	}
	log.Info("scene deleted", "scene", name)
}

func vec(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func toVec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}
