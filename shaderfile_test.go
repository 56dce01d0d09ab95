package debugdraw

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type compileRecorder struct {
	Device
	srcs []ShaderSource
	err  error
}

func (c *compileRecorder) CompileProgram(srcs ...ShaderSource) (Program, error) {
	c.srcs = srcs
	if c.err != nil {
		return 0, c.err
	}
	return 7, nil
}

func writeShaders(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vp := filepath.Join(dir, "tube.vert")
	fp := filepath.Join(dir, "tube.frag")
	if err := os.WriteFile(vp, []byte("void main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fp, []byte("out vec4 c; void main() { c = vec4(1); }"), 0o644); err != nil {
		t.Fatal(err)
	}
	return vp, fp
}

func TestCompileProgramFromFiles(t *testing.T) {
	vp, fp := writeShaders(t)
	dev := &compileRecorder{}
	p, err := CompileProgramFromFiles(dev, vp, fp)
	if err != nil {
		t.Fatal(err)
	}
	if p != 7 {
		t.Errorf("program = %d, want 7", p)
	}
	if len(dev.srcs) != 2 || dev.srcs[0].Stage() != StageVertex || dev.srcs[1].Stage() != StageFragment {
		t.Errorf("compiled %v", dev.srcs)
	}
	if dev.srcs[0].Source() != "void main() {}" {
		t.Errorf("vertex source = %q", dev.srcs[0].Source())
	}
}

func TestCompileProgramFromFilesErrors(t *testing.T) {
	vp, fp := writeShaders(t)
	if _, err := CompileProgramFromFiles(&compileRecorder{}, vp+".missing", fp); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
	dev := &compileRecorder{err: ErrCompile}
	if _, err := CompileProgramFromFiles(dev, vp, fp); !errors.Is(err, ErrCompile) {
		t.Errorf("compile err = %v, want ErrCompile", err)
	}
}

func TestShaderWatcher(t *testing.T) {
	vp, fp := writeShaders(t)
	other := filepath.Join(filepath.Dir(vp), "notes.txt")

	w, err := WatchShaders(vp, fp)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fp, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(fp)
	select {
	case got := <-w.Events:
		if got != want {
			t.Errorf("event for %q, want %q", got, want)
		}
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for changed shader")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events still open after Close")
	}
}

func TestShaderWatcherReportsFinalWrite(t *testing.T) {
	vp, fp := writeShaders(t)
	w, err := WatchShaders(vp, fp)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// truncate then write, as some editors save
	if err := os.WriteFile(fp, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(reloadDebounce / 5)
	if err := os.WriteFile(fp, []byte("final"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events:
		data, err := os.ReadFile(fp)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "final" {
			t.Errorf("event delivered while file held %q, want final contents", data)
		}
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for changed shader")
	}

	select {
	case name := <-w.Events:
		t.Errorf("second event for %q from one save", name)
	case <-time.After(3 * reloadDebounce):
	}
}
