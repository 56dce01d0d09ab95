//go:build headless

package main

import (
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"os"

	"j4k.co/debugdraw"
	"j4k.co/debugdraw/softdraw"
)

func run(cfg Config) error {
	dev := softdraw.New(cfg.Width, cfg.Height)
	defer dev.Release()
	dev.Clear(color.RGBA{0x30, 0x30, 0x38, 0xff})

	if cfg.CustomShaders() {
		_, err := debugdraw.CompileProgramFromFiles(dev, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if !errors.Is(err, debugdraw.ErrUnsupported) {
			return err
		}
		slog.Info("custom shaders ignored by the software device")
	}
	if cfg.Skybox != "" {
		tex, err := dev.LoadCubeTexture(cfg.Skybox)
		if err != nil {
			return err
		}
		if cube, ok := dev.CubeImages(tex); ok {
			slog.Info("skybox loaded", "base", cfg.Skybox, "size", cube.Size())
		}
	}

	newDemo(cfg).draw(dev, cfg.Width, cfg.Height, float32(*frameTime))

	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dev.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", *outPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("frame written", "path", *outPath, "width", cfg.Width, "height", cfg.Height)
	return nil
}
