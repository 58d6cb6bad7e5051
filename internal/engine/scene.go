package engine

import (
	"fmt"
	"path/filepath"
)

const DefaultSceneName = "empty_scene"

// SceneRef names a scene and the root directory it lives under. Objects get
// it passed in explicitly instead of pointing back at their scene.
type SceneRef struct {
	Root string
	Name string
}

func (r SceneRef) Dir() string {
	return filepath.Join(r.Root, r.Name)
}

// ObjectsPath is the file holding the object records.
func (r SceneRef) ObjectsPath() string {
	return filepath.Join(r.Dir(), "objects.json")
}

// ScriptFile is the file name of an object's script inside the scene dir.
func ScriptFile(id int) string {
	return fmt.Sprintf("object_%d.lua", id)
}

func (r SceneRef) ScriptPath(id int) string {
	return filepath.Join(r.Dir(), ScriptFile(id))
}

// Scene is the ordered object collection being edited.
type Scene struct {
	Ref     SceneRef
	Objects []*WorldObject

	// highWater is one past the largest id handed out this session, so ids
	// of deleted objects are not reused.
	highWater int
}

func NewScene(root string) *Scene {
	return &Scene{
		Ref:     SceneRef{Root: root, Name: DefaultSceneName},
		Objects: make([]*WorldObject, 0),
	}
}

// NextID returns max(existing)+1, 0 for an empty scene, never going below an
// id already handed out this session.
func (s *Scene) NextID() int {
	next := s.highWater
	for _, o := range s.Objects {
		if o.ID+1 > next {
			next = o.ID + 1
		}
	}
	return next
}

// Add appends o, rejecting ids already present.
func (s *Scene) Add(o *WorldObject) error {
	if o.ID < 0 {
		return fmt.Errorf("add object %d: %w", o.ID, ErrNegativeID)
	}
	if s.Find(o.ID) != nil {
		return fmt.Errorf("add object: id %d already in scene %q", o.ID, s.Ref.Name)
	}
	s.Objects = append(s.Objects, o)
	if o.ID+1 > s.highWater {
		s.highWater = o.ID + 1
	}
	return nil
}

// Remove drops the object with id, preserving the order of the rest.
func (s *Scene) Remove(id int) (*WorldObject, bool) {
	i := s.Index(id)
	if i < 0 {
		return nil, false
	}
	o := s.Objects[i]
	s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
	return o, true
}

// Insert puts o back at index i (clamped), used when undoing a delete.
func (s *Scene) Insert(i int, o *WorldObject) error {
	if err := s.Add(o); err != nil {
		return err
	}
	last := len(s.Objects) - 1
	if i < 0 || i >= last {
		return nil
	}
	copy(s.Objects[i+1:], s.Objects[i:last])
	s.Objects[i] = o
	return nil
}

func (s *Scene) Find(id int) *WorldObject {
	if i := s.Index(id); i >= 0 {
		return s.Objects[i]
	}
	return nil
}

func (s *Scene) Index(id int) int {
	for i, o := range s.Objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps in a freshly loaded object list under a new name and starts a
// new id session at max(loaded)+1.
func (s *Scene) Replace(name string, objects []*WorldObject) {
	s.Ref.Name = name
	s.Objects = objects
	if s.Objects == nil {
		s.Objects = make([]*WorldObject, 0)
	}
	s.highWater = 0
	s.highWater = s.NextID()
}

// Rename changes the scene name; object scripts follow on the next save.
func (s *Scene) Rename(name string) {
	s.Ref.Name = name
}

func (s *Scene) Len() int {
	return len(s.Objects)
}
