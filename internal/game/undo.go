package game

import (
	"worldedit/internal/engine"
)

const maxUndoStack = 50

// UndoActionType represents the type of action that can be undone
type UndoActionType int

const (
	UndoTransform UndoActionType = iota
	UndoDelete
	UndoPlace
)

// UndoState captures state for undo operations
type UndoState struct {
	Type      UndoActionType
	ObjectID  int
	Transform engine.Transform

	// For delete undo the object itself is kept, with its scene position
	Object *engine.WorldObject
	Index  int
}

// pushUndo saves the current transform of o before an edit
func (e *Editor) pushUndo(o *engine.WorldObject) {
	e.addUndoState(UndoState{
		Type:      UndoTransform,
		ObjectID:  o.ID,
		Transform: o.Transform,
	})
}

// pushDeleteUndo saves the deleted object so it can be restored
func (e *Editor) pushDeleteUndo(o *engine.WorldObject, index int) {
	e.addUndoState(UndoState{
		Type:      UndoDelete,
		ObjectID:  o.ID,
		Transform: o.Transform,
		Object:    o,
		Index:     index,
	})
}

func (e *Editor) pushPlaceUndo(o *engine.WorldObject) {
	e.addUndoState(UndoState{
		Type:     UndoPlace,
		ObjectID: o.ID,
	})
}

func (e *Editor) addUndoState(state UndoState) {
	// Cap stack size
	if len(e.undoStack) >= maxUndoStack {
		e.undoStack = e.undoStack[1:]
	}
	e.undoStack = append(e.undoStack, state)
}

// UndoDepth is the number of actions that can be undone.
func (e *Editor) UndoDepth() int {
	return len(e.undoStack)
}

// undo restores the last saved state
func (e *Editor) undo() {
	if len(e.undoStack) == 0 {
		return
	}
	// Pop last state
	state := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]

	scene := e.world.Scene
	switch state.Type {
	case UndoTransform:
		if o := scene.Find(state.ObjectID); o != nil {
			o.Transform = state.Transform
			e.Select(o.ID)
		}

	case UndoDelete:
		o := state.Object
		if err := scene.Insert(state.Index, o); err != nil {
			e.log.Error("restore object failed", "object", o.ID, "err", err)
			return
		}
		o.Transform = state.Transform
		// The file went away with the delete; the source is still in memory
		o.SaveScript(scene.Ref, e.log)
		e.Select(o.ID)
		e.setMsg("Restored %s", o.Name)

	case UndoPlace:
		o, ok := scene.Remove(state.ObjectID)
		if !ok {
			return
		}
		if o.Script.HasSource() {
			o.DeleteScript(e.log)
		}
		if e.selection == SelectObject && e.selectedID == o.ID {
			e.ClearSelection()
		}
	}
}
