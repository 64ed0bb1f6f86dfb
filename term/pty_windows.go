//go:build windows

package term

import (
	"errors"
	"os/exec"
)

var errUnsupported = errors.New("term: pseudo-terminals are not supported on windows")

func spawn(cmd *exec.Cmd, size Size) (Pty, error) {
	return nil, errUnsupported
}

// MakeRaw is not available on windows.
func MakeRaw(fd int) (func() error, error) {
	return nil, errUnsupported
}
