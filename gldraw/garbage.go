package gldraw

import (
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// garbage collects GL names released from goroutines other than the one that
// owns the context, or by finalizers. They are deleted at the next draw
// checkpoint on the GL thread.
type garbage struct {
	sync.Mutex
	buffers  []uint32
	textures []uint32
	programs []uint32
}

func (g *garbage) addBuffer(b uint32) {
	g.Lock()
	g.buffers = append(g.buffers, b)
	g.Unlock()
}

func (g *garbage) addTexture(t uint32) {
	g.Lock()
	g.textures = append(g.textures, t)
	g.Unlock()
}

func (g *garbage) addProgram(p uint32) {
	g.Lock()
	g.programs = append(g.programs, p)
	g.Unlock()
}

// release deletes everything queued. Must be called on the GL thread.
func (g *garbage) release() {
	g.Lock()
	defer g.Unlock()

	if len(g.buffers) > 0 {
		gl.DeleteBuffers(int32(len(g.buffers)), &g.buffers[0])
		verify("glDeleteBuffers")
		g.buffers = g.buffers[:0]
	}
	if len(g.textures) > 0 {
		gl.DeleteTextures(int32(len(g.textures)), &g.textures[0])
		verify("glDeleteTextures")
		g.textures = g.textures[:0]
	}
	for _, p := range g.programs {
		gl.DeleteProgram(p)
		verify("glDeleteProgram")
	}
	g.programs = g.programs[:0]
}

var trashbin garbage

// releaseGarbage is called at certain checkpoints to release GPU resources
// after their references have been dropped. This is needed to make the GL
// calls on the correct thread.
func releaseGarbage() {
	trashbin.release()
}
