package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserData(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger("info", "json", &buf)
	logger.Info("fetched object", UserData("key", "secret/key"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "<ud>secret/key</ud>", line["key"])
}

func TestParseLevel(t *testing.T) {
	type test struct {
		name     string
		input    string
		expected slog.Level
	}

	tests := []*test{
		{name: "Debug", input: "DEBUG", expected: slog.LevelDebug},
		{name: "Warning", input: "warning", expected: slog.LevelWarn},
		{name: "Error", input: "error", expected: slog.LevelError},
		{name: "Unknown", input: "verbose", expected: slog.LevelInfo},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, ParseLevel(test.input))
		})
	}
}

func TestNewLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger("warn", "text", &buf)
	logger.Info("hidden")
	require.Empty(t, buf.String())

	logger.Warn("shown")
	require.Contains(t, buf.String(), "msg=shown")
}
