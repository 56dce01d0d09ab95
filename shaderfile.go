package debugdraw

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// LoadShaderFiles reads a vertex and fragment shader from disk.
func LoadShaderFiles(vertexPath, fragmentPath string) (VertexShader, FragmentShader, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return "", "", fmt.Errorf("debugdraw: read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("debugdraw: read fragment shader: %w", err)
	}
	return VertexShader(vs), FragmentShader(fs), nil
}

// CompileProgramFromFiles loads a vertex/fragment pair and compiles it on dev.
func CompileProgramFromFiles(dev Device, vertexPath, fragmentPath string) (Program, error) {
	vs, fs, err := LoadShaderFiles(vertexPath, fragmentPath)
	if err != nil {
		return 0, err
	}
	p, err := dev.CompileProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("%s, %s: %w", vertexPath, fragmentPath, err)
	}
	return p, nil
}

// reloadDebounce is how long a file must stay quiet before its change is
// reported; editors tend to write a file several times per save.
const reloadDebounce = 100 * time.Millisecond

// ShaderWatcher reports changes to a set of shader files. Changed paths are
// delivered on Events once writes to them have settled, so the file holds
// its final contents; the consumer recompiles on its own graphics thread.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchShaders starts watching paths. The parent directories are watched so
// that editors replacing the file by rename are still seen.
func WatchShaders(paths ...string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	sw := &ShaderWatcher{
		watcher: w,
		files:   files,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *ShaderWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *ShaderWatcher) run() {
	defer close(w.done)

	// due holds the time each changed file settles; a file is reported once
	// no event for it arrived for reloadDebounce.
	due := make(map[string]time.Time)
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	var fire <-chan time.Time
	rearm := func() {
		if len(due) == 0 {
			timer.Stop()
			fire = nil
			return
		}
		var next time.Time
		for _, t := range due {
			if next.IsZero() || t.Before(next) {
				next = t
			}
		}
		timer.Reset(time.Until(next))
		fire = timer.C
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			due[name] = time.Now().Add(reloadDebounce)
			rearm()
		case now := <-fire:
			for name, t := range due {
				if t.After(now) {
					continue
				}
				delete(due, name)
				Logger().Debug("shader changed", "path", name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			rearm()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				Logger().Warn("shader watcher error dropped", "err", err)
			}
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}
