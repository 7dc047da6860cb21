// Package logger wraps zerolog with the keyval convenience style used
// by the background workers.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

// New builds a logger at the given level. Unknown level strings fall
// back to info. Pretty output is for local runs only.
func New(level string, pretty bool) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if pretty {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		zl = zerolog.New(os.Stdout)
	}
	zl = zl.Level(lvl).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Component returns a child logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Zerolog exposes the underlying logger for packages that take one.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.zl.Debug().Fields(keyvals).Msg(msg)
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.zl.Info().Fields(keyvals).Msg(msg)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.zl.Warn().Fields(keyvals).Msg(msg)
}

func (l *Logger) Error(err error, msg string, keyvals ...interface{}) {
	l.zl.Error().Err(err).Fields(keyvals).Msg(msg)
}

func (l *Logger) Fatal(err error, msg string, keyvals ...interface{}) {
	l.zl.Fatal().Err(err).Fields(keyvals).Msg(msg)
}
