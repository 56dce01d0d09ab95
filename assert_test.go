package debugdraw

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestAssertHandler(t *testing.T) {
	var got struct {
		op, file string
		line     int
		code     uint32
	}
	SetAssertHandler(func(op, file string, line int, code uint32) {
		got.op, got.file, got.line, got.code = op, file, line, code
	})
	defer SetAssertHandler(nil)

	Assert("glDrawArrays", "draw.go", 42, 0x502)
	if got.op != "glDrawArrays" || got.file != "draw.go" || got.line != 42 || got.code != 0x502 {
		t.Errorf("handler received %+v", got)
	}
}

func TestAssertDefaultLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Assert("glTexImage2D", "texture.go", 10, 0x501)
	out := buf.String()
	if !strings.Contains(out, "graphics call failed") || !strings.Contains(out, "glTexImage2D") {
		t.Errorf("log output = %q", out)
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}
