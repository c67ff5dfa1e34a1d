// Package obslog is a small leveled logger in the spirit of the one
// concrete piece of logging code found in the retrieved example pack
// (nmxmxh-inos_v1's kernel/utils/logger.go): no third-party logging
// library is imported directly by any example repo's source, so this
// stays on the standard library, adapted to this domain's call sites
// (tick warnings, checkpoint errors, server connection events).
package obslog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = map[Level]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
}

// Logger writes leveled, component-tagged lines to an io.Writer.
type Logger struct {
	mu        sync.Mutex
	level     Level
	component string
	out       io.Writer
}

// New creates a Logger for the given component, writing to os.Stderr at
// Info level and above.
func New(component string) *Logger {
	return &Logger{
		level:     Info,
		component: component,
		out:       os.Stderr,
	}
}

// WithOutput overrides the destination writer (used by tests).
func (l *Logger) WithOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	return l
}

// SetLevel changes the minimum level that gets written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "%s %-5s %s: %s\n",
		time.Now().Format("2006-01-02T15:04:05.000Z07:00"),
		levelNames[level],
		l.component,
		msg,
	)
}

func (l *Logger) Debugf(format string, args ...any) { l.log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(Error, format, args...) }
