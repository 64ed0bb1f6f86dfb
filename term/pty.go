// Package term provides the pseudo-terminal endpoint a terminal session
// drives: an opaque byte stream with resize, close and wakeup.
package term

import (
	"io"
	"os/exec"
)

// Size is a terminal geometry, cells plus pixels. The pixel extent
// drives text-area size reports.
type Size struct {
	Rows   int
	Cols   int
	XPixel int
	YPixel int
}

// CellPixels returns the per-cell pixel metrics, zero when unknown.
func (s Size) CellPixels() (w, h int) {
	if s.Cols > 0 {
		w = s.XPixel / s.Cols
	}
	if s.Rows > 0 {
		h = s.YPixel / s.Rows
	}
	return w, h
}

// Pty is the session's byte-stream endpoint with an attached child
// process.
type Pty interface {
	io.ReadWriteCloser

	// Resize propagates a geometry change to the child (SIGWINCH)
	Resize(Size) error
	// Size reports the current geometry
	Size() (Size, error)
	// Wakeup forces a blocked Read to return; used once at session
	// teardown
	Wakeup() error
	// Wait blocks until the child exits and returns its exit code;
	// -1 when it cannot be determined
	Wait() (int, error)
}

// Spawn starts cmd on a fresh pseudo-terminal of the given size.
func Spawn(cmd *exec.Cmd, size Size) (Pty, error) {
	return spawn(cmd, size)
}
