package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"j4k.co/debugdraw/vmath"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
width: 320
tube:
  radius: 0.5
  color: [1, 0, 0]
shaders:
  vertex: tube.vert
  fragment: tube.frag
  watch: true
log_level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	def := defaultConfig()
	if cfg.Width != 320 || cfg.Height != def.Height {
		t.Errorf("size = %dx%d, want 320x%d", cfg.Width, cfg.Height, def.Height)
	}
	if cfg.Tube.Radius != 0.5 || cfg.Tube.Resolution != def.Tube.Resolution {
		t.Errorf("tube = %+v", cfg.Tube)
	}
	if cfg.TubeColor() != (vmath.Vec3{1, 0, 0}) {
		t.Errorf("color = %v", cfg.TubeColor())
	}
	if !cfg.CustomShaders() || !cfg.Shaders.Watch {
		t.Errorf("shaders = %+v", cfg.Shaders)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v, want debug", l)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"size", "width: 0"},
		{"radius", "tube: {radius: -1}"},
		{"resolution", "tube: {resolution: 2}"},
		{"half shaders", "shaders: {vertex: a.vert}"},
		{"level", "log_level: loud"},
	}
	for _, tt := range tests {
		_, err := LoadConfig(writeConfig(t, tt.body))
		if !errors.Is(err, errConfig) {
			t.Errorf("%s: err = %v, want errConfig", tt.name, err)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
	if _, err := LoadConfig(writeConfig(t, "width: [")); err == nil || errors.Is(err, errConfig) {
		t.Errorf("bad yaml: err = %v, want a parse error", err)
	}
}

func TestBounds(t *testing.T) {
	d := newDemo(defaultConfig())
	if len(d.tube.Positions) == 0 {
		t.Fatal("empty tube")
	}
	for _, p := range d.tube.Positions {
		for i := 0; i < 3; i++ {
			if p[i] < d.lower[i] || p[i] > d.upper[i] {
				t.Fatalf("%v outside bounds %v %v", p, d.lower, d.upper)
			}
		}
	}
}

func TestNewLogger(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "warn"
	var buf bytes.Buffer
	logger, err := newLogger(&buf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("log output %q, want only the warning", out)
	}

	cfg.LogLevel = "loud"
	if _, err := newLogger(&buf, cfg); !errors.Is(err, errConfig) {
		t.Errorf("bad level: err = %v, want errConfig", err)
	}
}
