package engine

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

type ScriptState int

const (
	ScriptUnloaded ScriptState = iota
	ScriptLoaded
)

func (s ScriptState) String() string {
	if s == ScriptLoaded {
		return "loaded"
	}
	return "unloaded"
}

// ScriptBinding ties one object to its script file and, once loaded, to the
// compiled chunk and the Lua state that holds the object's script-local
// globals.
type ScriptBinding struct {
	path        string
	source      string
	sourceKnown bool // source was read from disk or set by the editor
	keepFile    bool // file exists but its text could not be used

	proto *lua.FunctionProto
	state *lua.LState
}

func NewScriptBinding(path string) *ScriptBinding {
	return &ScriptBinding{path: path}
}

func (b *ScriptBinding) Path() string {
	return b.path
}

func (b *ScriptBinding) Source() string {
	return b.source
}

// HasSource reports whether there is script text worth saving or compiling.
func (b *ScriptBinding) HasSource() bool {
	return strings.TrimSpace(b.source) != ""
}

// SetSource replaces the script text. A loaded chunk keeps running until the
// next reset.
func (b *ScriptBinding) SetSource(src string) {
	b.source = src
	b.sourceKnown = true
	b.keepFile = false
}

// MarkUnusable records that the bound file exists but could not be used. The
// binding stays empty and saving leaves the file in place.
func (b *ScriptBinding) MarkUnusable() {
	b.source = ""
	b.sourceKnown = true
	b.keepFile = true
}

// KeepsFile reports whether the bound file must survive a save even though
// the binding has no source.
func (b *ScriptBinding) KeepsFile() bool {
	return b.keepFile
}

func (b *ScriptBinding) State() ScriptState {
	if b.proto != nil {
		return ScriptLoaded
	}
	return ScriptUnloaded
}

func (b *ScriptBinding) Loaded() bool {
	return b.proto != nil
}

// Read loads the source text from the bound path without compiling it.
func (b *ScriptBinding) Read() error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return err
	}
	b.source = string(data)
	b.sourceKnown = true
	return nil
}

func (b *ScriptBinding) load(log *slog.Logger) {
	if b.proto != nil {
		return
	}

	if !b.sourceKnown {
		if err := b.Read(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Error("script read failed", "path", b.path, "err", err)
			}
			return
		}
	}
	if !b.HasSource() {
		return
	}

	proto, err := compileScript(filepath.Base(b.path), b.source)
	if err != nil {
		log.Error("script compile failed", "path", b.path, "err", err)
		return
	}
	b.proto = proto
	b.state = newScriptState()
}

func (b *ScriptBinding) save(path string, log *slog.Logger) {
	if path != b.path {
		// a kept file stays behind in the old scene dir
		b.keepFile = false
	}
	b.path = path
	if !b.HasSource() {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Error("script save failed", "path", path, "err", err)
		return
	}
	if err := os.WriteFile(path, []byte(b.source), 0644); err != nil {
		log.Error("script save failed", "path", path, "err", err)
	}
}

func (b *ScriptBinding) remove(log *slog.Logger) {
	b.unload()
	if err := os.Remove(b.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("no script file to delete", "path", b.path)
			return
		}
		log.Error("script delete failed", "path", b.path, "err", err)
	}
}

func (b *ScriptBinding) unload() {
	if b.state != nil {
		b.state.Close()
	}
	b.state = nil
	b.proto = nil
}
