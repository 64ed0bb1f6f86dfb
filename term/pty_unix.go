//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package term

import (
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// unixPty is a child process attached to a unix pseudo-terminal.
type unixPty struct {
	f   *os.File
	cmd *exec.Cmd

	mu     sync.Mutex
	closed bool
}

func spawn(cmd *exec.Cmd, size Size) (Pty, error) {
	ws := &pty.Winsize{
		Rows: uint16(size.Rows),
		Cols: uint16(size.Cols),
		X:    uint16(size.XPixel),
		Y:    uint16(size.YPixel),
	}
	f, err := pty.StartWithAttrs(cmd, ws, &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	})
	if err != nil {
		return nil, err
	}
	return &unixPty{f: f, cmd: cmd}, nil
}

func (p *unixPty) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *unixPty) Write(b []byte) (int, error) { return p.f.Write(b) }

func (p *unixPty) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.f.Close()
}

func (p *unixPty) Resize(size Size) error {
	return pty.Setsize(p.f, &pty.Winsize{
		Rows: uint16(size.Rows),
		Cols: uint16(size.Cols),
		X:    uint16(size.XPixel),
		Y:    uint16(size.YPixel),
	})
}

func (p *unixPty) Size() (Size, error) {
	ws, err := unix.IoctlGetWinsize(int(p.f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{
		Rows:   int(ws.Row),
		Cols:   int(ws.Col),
		XPixel: int(ws.Xpixel),
		YPixel: int(ws.Ypixel),
	}, nil
}

// Wakeup unblocks a pending Read. os.File reads run through the runtime
// poller, so closing the descriptor wakes the reader; the session is
// tearing down when this is called.
func (p *unixPty) Wakeup() error {
	return p.Close()
}

func (p *unixPty) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	if exit, ok := err.(*exec.ExitError); ok {
		return exit.ExitCode(), nil
	}
	return -1, err
}

// MakeRaw switches the controlling terminal at fd into raw mode and
// returns a restore function, for hosts embedding the session in a real
// tty.
func MakeRaw(fd int) (func() error, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}
