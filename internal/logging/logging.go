package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var (
	level  = &slog.LevelVar{}
	logger = newLogger(colorable.NewColorable(os.Stderr), !isatty.IsTerminal(os.Stderr.Fd()))
	exit   = os.Exit
)

func newLogger(w io.Writer, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// SetLevel applies a LOG_LEVEL style string (debug|info|warn|error).
func SetLevel(s string) {
	level.Set(ParseLevel(s))
}

// Logger exposes the underlying slog logger for structured attributes.
func Logger() *slog.Logger {
	return logger
}

func logf(l slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !logger.Enabled(ctx, l) {
		return
	}
	logger.Log(ctx, l, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...interface{}) {
	logf(slog.LevelDebug, format, args...)
}

func Infof(format string, args ...interface{}) {
	logf(slog.LevelInfo, format, args...)
}

func Warnf(format string, args ...interface{}) {
	logf(slog.LevelWarn, format, args...)
}

func Errorf(format string, args ...interface{}) {
	logf(slog.LevelError, format, args...)
}

// Fatalf logs at error level and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	logf(slog.LevelError, format, args...)
	exit(1)
}
