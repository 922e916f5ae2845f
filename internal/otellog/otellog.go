// Package otellog is the SDK's internal diagnostic logger (§7: internally
// swallowed errors — network failures, serialization issues, exporter
// shutdown races — are never raised to the caller, only logged here at an
// appropriate severity). Mirrors the teacher's internal/log package:
// package-level leveled functions gated by an atomic level so callers skip
// expensive formatting below the configured threshold (§9 redesign flag).
package otellog

import (
	"io"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/signalcore/otelsdk/internal/otelenv"
)

// Level mirrors the OTEL_LOG_LEVEL values (§6).
type Level int32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var current int32 = int32(LevelInfo)

var base = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.TraceLevel)
	return l
}

func init() {
	if lvl, ok := otelenv.Lookup("OTEL_LOG_LEVEL"); ok {
		SetLevel(ParseLevel(lvl))
	}
}

// ParseLevel maps the OTEL_LOG_LEVEL string values to a Level.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// SetLevel atomically updates the diagnostic log level floor.
func SetLevel(l Level) { atomic.StoreInt32(&current, int32(l)) }

// GetLevel returns the current diagnostic log level floor.
func GetLevel() Level { return Level(atomic.LoadInt32(&current)) }

func enabled(l Level) bool { return l >= GetLevel() }

func Tracef(format string, args ...interface{}) {
	if enabled(LevelTrace) {
		base.Tracef(format, args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if enabled(LevelDebug) {
		base.Debugf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if enabled(LevelInfo) {
		base.Infof(format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if enabled(LevelWarn) {
		base.Warnf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if enabled(LevelError) {
		base.Errorf(format, args...)
	}
}

// SetOutput redirects where log lines are written (tests use this to
// capture output).
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}
