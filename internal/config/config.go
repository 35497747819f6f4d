// Package config holds the render configuration: where the scene and
// assets live and how frames are produced. Scene content itself is the
// scene package's concern.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	AssetDir  string `json:"asset_dir"`
	ScenePath string `json:"scene"`
	OutputDir string `json:"output_dir"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	FPS         int     `json:"fps"`
	DurationSec float64 `json:"duration_sec"`
	Animated    bool    `json:"animated"`
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	ScenePath string
	OutputDir string
	FPS       int
	Workers   int
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority when non-zero/non-empty; relative paths resolve against the
// base dir.
func (c *Config) Resolve(flags Flags) {
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.ScenePath != "" {
		c.ScenePath = flags.ScenePath
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	c.AssetDir = resolvePath(c.BaseDir, c.AssetDir, "assets")
	c.ScenePath = resolvePath(c.BaseDir, c.ScenePath, "scene.json")
	c.OutputDir = resolvePath(c.BaseDir, c.OutputDir, "out")

	if c.RenderSize <= 0 {
		c.RenderSize = 1024
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.DurationSec <= 0 {
		c.DurationSec = 10
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func resolvePath(base, value, fallback string) string {
	if value == "" {
		return filepath.Join(base, fallback)
	}
	if !filepath.IsAbs(value) {
		return filepath.Join(base, value)
	}
	return value
}
