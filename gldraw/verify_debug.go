//go:build !release

package gldraw

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"

	"j4k.co/debugdraw"
)

// maxErrors bounds the drain loop; a lost context can report errors forever.
const maxErrors = 8

// verify drains the GL error queue after op and reports every error through
// debugdraw.Assert. Builds with the release tag compile it to nothing.
func verify(op string) {
	for i := 0; i < maxErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		_, file, line, _ := runtime.Caller(1)
		debugdraw.Assert(op, file, line, code)
	}
}
