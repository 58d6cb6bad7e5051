// Package assets tracks the model files available to the editor and the load
// and unload requests the editor has made for them. Model memory itself is
// owned by the render backend.
package assets

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Model is one catalog entry.
type Model struct {
	Ref    string // file name without extension
	Path   string
	Loaded bool
}

// Request asks the render backend to load Path under Ref.
type Request struct {
	Ref  string
	Path string
}

var modelExts = map[string]bool{
	".glb":  true,
	".gltf": true,
	".obj":  true,
	".iqm":  true,
	".m3d":  true,
}

// IsModelFile reports whether name has an extension raylib can load as a model.
func IsModelFile(name string) bool {
	return modelExts[strings.ToLower(filepath.Ext(name))]
}

// Scan lists the model files directly under dir, sorted by reference.
func Scan(dir string) ([]Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var models []Model
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !IsModelFile(name) {
			continue
		}
		models = append(models, Model{
			Ref:  strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Ref < models[j].Ref })
	return models, nil
}

// Catalog is the editor's view of the models directory.
type Catalog struct {
	dir    string
	models []Model
	load   []Request
	unload []string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

func (c *Catalog) Dir() string {
	return c.dir
}

// Refresh rescans the directory, keeping loaded flags for models that are
// still present. A missing directory is created; failures are logged and leave
// the catalog empty.
func (c *Catalog) Refresh(log *slog.Logger) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		log.Error("create models dir failed", "dir", c.dir, "err", err)
		c.models = nil
		return
	}

	models, err := Scan(c.dir)
	if err != nil {
		log.Error("scan models failed", "dir", c.dir, "err", err)
		c.models = nil
		return
	}

	loaded := make(map[string]bool, len(c.models))
	for _, m := range c.models {
		if m.Loaded {
			loaded[m.Ref] = true
		}
	}
	for i := range models {
		models[i].Loaded = loaded[models[i].Ref]
	}
	c.models = models
}

// Models returns the catalog entries.
func (c *Catalog) Models() []Model {
	return c.models
}

// Lookup finds a model by reference.
func (c *Catalog) Lookup(ref string) (Model, bool) {
	for _, m := range c.models {
		if m.Ref == ref {
			return m, true
		}
	}
	return Model{}, false
}

// RequestLoad queues a load for ref if it is known and not loaded.
func (c *Catalog) RequestLoad(ref string) bool {
	m, ok := c.Lookup(ref)
	if !ok || m.Loaded {
		return false
	}
	c.Enqueue([]Request{{Ref: m.Ref, Path: m.Path}})
	return true
}

// RequestAll queues a load for every model that is not loaded yet.
func (c *Catalog) RequestAll() {
	for _, m := range c.models {
		if !m.Loaded {
			c.Enqueue([]Request{{Ref: m.Ref, Path: m.Path}})
		}
	}
}

// RequestUnload queues an unload and clears the loaded flag.
func (c *Catalog) RequestUnload(ref string) {
	for i := range c.models {
		if c.models[i].Ref == ref {
			c.models[i].Loaded = false
		}
	}
	c.unload = append(c.unload, ref)
}

// Enqueue adds load requests, dropping duplicates of already queued refs.
func (c *Catalog) Enqueue(reqs []Request) {
	for _, r := range reqs {
		dup := false
		for _, q := range c.load {
			if q.Ref == r.Ref {
				dup = true
				break
			}
		}
		if !dup {
			c.load = append(c.load, r)
		}
	}
}

// Drain hands the pending requests to the caller and clears them.
func (c *Catalog) Drain() (load []Request, unload []string) {
	load, unload = c.load, c.unload
	c.load, c.unload = nil, nil
	return load, unload
}

// MarkLoaded records that the backend reported ref as loaded.
func (c *Catalog) MarkLoaded(ref string) {
	for i := range c.models {
		if c.models[i].Ref == ref {
			c.models[i].Loaded = true
		}
	}
}
