// Package log is a thin leveled facade over slog used throughout
// termcore. The module logs nothing by default; hosts install a handler
// with SetHandler (or SetLogger) to receive output.
package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

var (
	mu     sync.Mutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetHandler routes all module logging through h.
func SetHandler(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(h)
}

// SetLogger routes all module logging through l.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func Debug(format string, args ...any) {
	get().Debug(message(format, args...))
}

func Info(format string, args ...any) {
	get().Info(message(format, args...))
}

func Warn(format string, args ...any) {
	get().Warn(message(format, args...))
}

func Error(format string, args ...any) {
	get().Error(message(format, args...))
}

func message(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Limiter rate-limits repetitive warnings, one line per key per window.
// Unknown control sequences report through one of these so a hostile byte
// stream cannot flood the host's log.
type Limiter struct {
	Window time.Duration

	mu   sync.Mutex
	seen map[string]time.Time
}

func (rl *Limiter) window() time.Duration {
	if rl.Window == 0 {
		return 30 * time.Second
	}
	return rl.Window
}

// Warn logs the formatted message unless key already logged within the
// window.
func (rl *Limiter) Warn(key string, format string, args ...any) {
	rl.mu.Lock()
	now := time.Now()
	if rl.seen == nil {
		rl.seen = make(map[string]time.Time)
	}
	last, ok := rl.seen[key]
	if ok && now.Sub(last) < rl.window() {
		rl.mu.Unlock()
		return
	}
	rl.seen[key] = now
	rl.mu.Unlock()
	Warn(format, args...)
}
