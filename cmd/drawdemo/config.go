package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"j4k.co/debugdraw/vmath"
)

// Config is the demo's YAML configuration. Fields missing from the file keep
// their defaults.
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`

	Tube struct {
		Radius     float32    `yaml:"radius"`
		Resolution int        `yaml:"resolution"`
		Smoothing  int        `yaml:"smoothing"`
		Color      [3]float32 `yaml:"color"`
	} `yaml:"tube"`

	// Shaders replace the built-in tube program when both paths are set.
	Shaders struct {
		Vertex   string `yaml:"vertex"`
		Fragment string `yaml:"fragment"`
		Watch    bool   `yaml:"watch"`
	} `yaml:"shaders"`

	// Skybox is a cube map base name, see debugdraw.LoadCubeImages.
	Skybox string `yaml:"skybox"`

	LogLevel string `yaml:"log_level"`
}

func defaultConfig() Config {
	var c Config
	c.Width = 960
	c.Height = 640
	c.Title = "debugdraw"
	c.Tube.Radius = 0.25
	c.Tube.Resolution = 12
	c.Tube.Smoothing = 8
	c.Tube.Color = [3]float32{0.9, 0.5, 0.2}
	c.LogLevel = "info"
	return c
}

var errConfig = errors.New("invalid config")

// LoadConfig reads path over the defaults. An empty path gives the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", errConfig, c.Width, c.Height)
	case c.Tube.Radius <= 0:
		return fmt.Errorf("%w: tube radius %v", errConfig, c.Tube.Radius)
	case c.Tube.Resolution < 3:
		return fmt.Errorf("%w: tube resolution %d, need at least 3", errConfig, c.Tube.Resolution)
	case (c.Shaders.Vertex == "") != (c.Shaders.Fragment == ""):
		return fmt.Errorf("%w: shaders need both vertex and fragment paths", errConfig)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", errConfig, err)
	}
	return nil
}

// newLogger returns a text logger writing to w at the configured level.
func newLogger(w io.Writer, cfg Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errConfig, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

func (c *Config) TubeColor() vmath.Vec3 {
	return vmath.Vec3(c.Tube.Color)
}

// CustomShaders reports whether the tube is drawn with shaders from disk.
func (c *Config) CustomShaders() bool {
	return c.Shaders.Vertex != "" && c.Shaders.Fragment != ""
}
