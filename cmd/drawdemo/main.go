// Command drawdemo draws the debug primitives around an extruded tube.
//
// By default it opens an OpenGL window. Built with the headless tag it renders
// a single frame in software and writes it as a PNG.
//
//	drawdemo -config demo.yaml
//	go build -tags headless ./cmd/drawdemo && ./drawdemo -out frame.png -time 2.5
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"j4k.co/debugdraw"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	outPath    = flag.String("out", "frame.png", "output image (headless builds)")
	frameTime  = flag.Float64("time", 0, "scene time in seconds (headless builds)")
)

func main() {
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drawdemo: %v\n", err)
		os.Exit(2)
	}
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drawdemo: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)
	debugdraw.SetLogger(logger)

	if err := run(cfg); err != nil {
		slog.Error("drawdemo failed", "err", err)
		os.Exit(1)
	}
}
