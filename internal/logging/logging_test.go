// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfraster/pkg/types"
)

// setupTestLogger points the package logger at a buffer with JSON output.
func setupTestLogger(buf *bytes.Buffer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	SetLoggerForTest(zerolog.New(buf).With().Timestamp().Logger().Level(lvl))
}

func TestInfoLogging(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Info("converting document", "pages", 3, "format", "png")

	out := buf.String()
	assert.Contains(t, out, "converting document")
	assert.Contains(t, out, `"pages":3`)
	assert.Contains(t, out, `"format":"png"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	Info("should be suppressed")
	Warn("should appear", "code", 7)

	out := buf.String()
	assert.NotContains(t, out, "should be suppressed")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, `"code":7`)
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	SetLogLevel("debug")
	Debug("now visible")

	assert.Contains(t, buf.String(), "now visible")
}

func TestFieldsSkipsNonStringKeys(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Info("odd keys", 42, "value", "kept", "yes")

	out := buf.String()
	assert.Contains(t, out, `"kept":"yes"`)
	assert.NotContains(t, out, `"value"`)
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	err := Setup(types.LoggingConfig{Level: "loud"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "loud"))
}

func TestSetupLevels(t *testing.T) {
	tests := []string{"", "debug", "info", "warn", "error"}
	for _, level := range tests {
		t.Run("level "+level, func(t *testing.T) {
			require.NoError(t, Setup(types.LoggingConfig{Level: level, Format: "json"}))
		})
	}
	// Restore a quiet default for other tests in the package.
	setupTestLogger(&bytes.Buffer{}, "info")
}
