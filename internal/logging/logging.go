// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging provides the process-wide structured logger. Stages
// receive no ambient logger; they call these helpers, and tests swap the
// sink with SetLoggerForTest.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/pdfraster/pkg/types"
)

var logger = zerolog.New(consoleWriter()).With().Timestamp().Logger()

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

// Setup configures the package logger from config: level, console or JSON
// output, and an optional rotating file sink.
func Setup(cfg types.LoggingConfig) error {
	lvl := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		lvl = parsed
	}

	var w io.Writer
	switch {
	case cfg.File != "":
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		maxBackups := cfg.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		}
	case strings.EqualFold(cfg.Format, "json"):
		w = os.Stderr
	default:
		w = consoleWriter()
	}

	logger = zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	return nil
}

// SetLogLevel adjusts the minimum level of the configured logger. Unknown
// levels are ignored.
func SetLogLevel(level string) {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
		logger = logger.Level(lvl)
	}
}

// SetLoggerForTest replaces the package logger. Tests only.
func SetLoggerForTest(l zerolog.Logger) {
	logger = l
}

// fields attaches alternating key-value pairs to an event. Keys that are
// not strings are skipped along with their values.
func fields(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(k, kv[i+1])
	}
	return e
}

// Debug logs a debug message with alternating key-value pairs.
func Debug(msg string, kv ...any) {
	fields(logger.Debug(), kv).Msg(msg)
}

// Info logs an informational message with alternating key-value pairs.
func Info(msg string, kv ...any) {
	fields(logger.Info(), kv).Msg(msg)
}

// Warn logs a warning with alternating key-value pairs.
func Warn(msg string, kv ...any) {
	fields(logger.Warn(), kv).Msg(msg)
}

// Error logs an error message with alternating key-value pairs.
func Error(msg string, kv ...any) {
	fields(logger.Error(), kv).Msg(msg)
}
