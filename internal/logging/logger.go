// Package logging writes the process log for the winstrategy binary. It
// records when a session started, with which settings, and how it ended, so
// failures survive the alternate screen being torn down.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/win-strategy/internal/config"
)

// FileName is the process log inside .winstrategy/logs.
const FileName = "winstrategy.log"

// Logger appends timestamped lines to a writer, usually the process log.
type Logger struct {
	out     io.Writer
	closer  io.Closer
	now     func() time.Time
	started time.Time
}

// New opens (or creates) the process log for the given configuration.
func New(cfg *config.Config) (*Logger, error) {
	logDir := cfg.LogsDir()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{out: f, closer: f, now: time.Now}, nil
}

// NewWriter logs to w; Close leaves w open.
func NewWriter(w io.Writer) *Logger {
	return &Logger{out: w, now: time.Now}
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Printf writes a single timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.out, "[%s] %s\n", l.now().Format(time.RFC3339), line)
}

// SessionStarted records the beginning of an interactive session.
func (l *Logger) SessionStarted(version string, cfg *config.Config) {
	if l == nil {
		return
	}
	l.started = l.now()
	l.Printf("session start · version %s · project %s · title %q", version, cfg.ProjectDir, cfg.Title())
}

// SessionEnded records how the session finished. A nil err is a clean exit.
func (l *Logger) SessionEnded(err error) {
	if l == nil {
		return
	}
	elapsed := time.Duration(0)
	if !l.started.IsZero() {
		elapsed = l.now().Sub(l.started).Round(time.Second)
	}
	if err != nil {
		l.Printf("session failed after %s: %v", elapsed, err)
		return
	}
	l.Printf("session closed after %s", elapsed)
}
