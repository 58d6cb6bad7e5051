package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"worldedit/internal/config"
	"worldedit/internal/world"
)

var templates = map[string]string{
	"empty": `-- id, name, x, y, z, delta_time, mouse_x, mouse_y, left_mouse, right_mouse,
-- window_dim_x and window_dim_y are set before every frame.
-- Whatever is left in x, y and z becomes the object's position.
`,
	"drift": `speed = speed or 2
x = x + speed * delta_time
`,
	"bob": `t = (t or 0) + delta_time
base_y = base_y or y
y = base_y + math.sin(t * 2)
`,
	"orbit": `angle = angle or math.atan2(z, x)
radius = radius or math.sqrt(x * x + z * z)
angle = angle + delta_time
x = radius * math.cos(angle)
z = radius * math.sin(angle)
`,
}

func templateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// scaffold gives object id in scene a starter script and saves the scene so
// the record references it.
func scaffold(store *world.Store, scene string, id int, template string, log *slog.Logger) (string, error) {
	if err := world.ValidateSceneName(scene); err != nil {
		return "", err
	}
	src, ok := templates[template]
	if !ok {
		return "", fmt.Errorf("unknown template %q (have %s)", template, strings.Join(templateNames(), ", "))
	}

	_, objects := store.Import(scene, log)
	for _, o := range objects {
		if o.ID != id {
			continue
		}
		if o.Script.HasSource() || o.Script.KeepsFile() {
			return "", fmt.Errorf("object %d already has a script at %s", id, o.Script.Path())
		}
		o.Script.SetSource(src)
		if err := store.Export(store.Ref(scene), objects, log); err != nil {
			return "", err
		}
		return o.Script.Path(), nil
	}
	return "", fmt.Errorf("scene %s has no object %d", scene, id)
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/newscript <scene> <object-id> [template]\n")
		fmt.Fprintf(os.Stderr, "Example: go run ./cmd/newscript level1 3 bob\n")
		fmt.Fprintf(os.Stderr, "Templates: %s\n", strings.Join(templateNames(), ", "))
		os.Exit(1)
	}

	id, err := strconv.Atoi(os.Args[2])
	if err != nil || id < 0 {
		fmt.Fprintf(os.Stderr, "Error: object id must be a non-negative integer\n")
		os.Exit(1)
	}
	template := "empty"
	if len(os.Args) > 3 {
		template = os.Args[3]
	}

	cfgPath := config.DefaultPath
	if p := os.Getenv("WORLDEDIT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadEditor(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	path, err := scaffold(world.NewStore(cfg.ScenesDir), os.Args[1], id, template, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s\n", path)
}
