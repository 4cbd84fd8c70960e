// Package log provides the logging interface used throughout
// the emulator, backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Fields are structured context attached to every message of a
// logger returned by WithFields.
type Fields = logrus.Fields

// New returns a logger writing to stderr at info level. Colours
// are only used when stderr is a terminal.
func New() Logger {
	return NewWithOutput(os.Stderr, logrus.InfoLevel)
}

// NewWithOutput returns a logger writing to w at the given level.
func NewWithOutput(w io.Writer, level logrus.Level) Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    !color,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// ParseLevel converts a level name ("debug", "info", ...) for NewWithOutput.
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}

// WithFields returns a logger adding fields to every message.
// Loggers not created by this package are returned unchanged.
func WithFields(l Logger, fields Fields) Logger {
	if fl, ok := l.(logrus.FieldLogger); ok {
		return fl.WithFields(fields)
	}
	return l
}
