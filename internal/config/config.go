package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when WORLDEDIT_CONFIG is not set.
const DefaultPath = "config/editor.yaml"

// Window describes the editor window.
type Window struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

// Camera holds the editor camera pose used for a fresh session.
type Camera struct {
	Position  [3]float32 `yaml:"position"`
	Pitch     float32    `yaml:"pitch"`
	Yaw       float32    `yaml:"yaw"`
	MoveSpeed float32    `yaml:"move_speed"`
}

// Options are the "Edit Options" menu toggles.
type Options struct {
	SnapToGrid     bool `yaml:"snap_to_grid" json:"snapToGrid"`
	ShowAxis       bool `yaml:"show_axis" json:"showAxis"`
	PlaceWithMouse bool `yaml:"place_with_mouse" json:"placeWithMouse"`
}

// Editor holds all configuration for the editor binary.
type Editor struct {
	Window Window `yaml:"window"`

	// Storage
	ScenesDir string `yaml:"scenes_dir"`
	ModelsDir string `yaml:"models_dir"`
	PrefsFile string `yaml:"prefs_file"`

	// Run mode
	RunToggleKey  string        `yaml:"run_toggle_key"`
	ScriptWorkers int           `yaml:"script_workers"` // 1 = sequential
	ScriptBudget  time.Duration `yaml:"script_budget"`  // per object per frame, 0 = unbounded

	// Diagnostics
	LogCapacity int    `yaml:"log_capacity"`
	LogLevel    string `yaml:"log_level"`

	Options Options `yaml:"options"`
	Camera  Camera  `yaml:"camera"`
}

// DefaultEditor returns Editor config with sensible defaults.
func DefaultEditor() Editor {
	return Editor{
		Window: Window{
			Width:     1280,
			Height:    1080,
			Title:     "World Editor",
			TargetFPS: 60,
		},
		ScenesDir:     "./Scenes",
		ModelsDir:     "./Models",
		PrefsFile:     ".editor_prefs.json",
		RunToggleKey:  "F6",
		ScriptWorkers: 1,
		ScriptBudget:  50 * time.Millisecond,
		LogCapacity:   200,
		LogLevel:      "info",
		Options: Options{
			ShowAxis:       true,
			PlaceWithMouse: true,
		},
		Camera: Camera{
			Position:  [3]float32{83.93359, 128.62776, 55.85842},
			Pitch:     -62.27426,
			Yaw:       210.10083,
			MoveSpeed: 50,
		},
	}
}

// LoadEditor loads editor config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEditor(path string) (Editor, error) {
	cfg := DefaultEditor()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the editor cannot run with.
func (c Editor) Validate() error {
	if c.ScenesDir == "" {
		return fmt.Errorf("scenes_dir must not be empty")
	}
	if c.ModelsDir == "" {
		return fmt.Errorf("models_dir must not be empty")
	}
	if c.ScriptWorkers < 1 {
		return fmt.Errorf("script_workers must be >= 1, got %d", c.ScriptWorkers)
	}
	if c.ScriptBudget < 0 {
		return fmt.Errorf("script_budget must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level, falling back to info.
func (c Editor) SlogLevel() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}
