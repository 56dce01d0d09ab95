package debugdraw

import (
	"sync/atomic"
)

// AssertFunc receives a failed graphics call: the operation name, the source
// location of the call and the backend's error code.
type AssertFunc func(op, file string, line int, code uint32)

var assertPtr atomic.Pointer[AssertFunc]

// SetAssertHandler installs h as the target of Assert. nil restores the
// default, which logs at error level.
func SetAssertHandler(h AssertFunc) {
	if h == nil {
		assertPtr.Store(nil)
		return
	}
	assertPtr.Store(&h)
}

// Assert reports a failed graphics call. Backends only call it from builds
// without the release tag.
func Assert(op, file string, line int, code uint32) {
	if h := assertPtr.Load(); h != nil {
		(*h)(op, file, line, code)
		return
	}
	Logger().Error("graphics call failed",
		"op", op,
		"file", file,
		"line", line,
		"code", code,
	)
}
