// Package log provides the structured logging setup used by the replication verifier along with helpers to tag or
// mask user data.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// UserDataValue is a string that should be treated as user data, and therefore tagged as such in the logs.
type UserDataValue string

func (u UserDataValue) LogValue() slog.Value {
	return slog.StringValue(fmt.Sprintf("<ud>%s</ud>", u))
}

// UserData returns an Attr for a string value that should be treated as user data.
func UserData(key, value string) slog.Attr {
	return slog.Attr{Key: key, Value: UserDataValue(value).LogValue()}
}

// ParseLevel converts the given level name into a 'slog.Level', unknown names result in 'slog.LevelInfo'.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a logger with the given level and format writing to 'w'.
//
// Supported formats: "text", "json" (default: "text").
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler

	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Setup configures the default slog logger with the specified level and format.
func Setup(level, format string, w io.Writer) *slog.Logger {
	logger := NewLogger(level, format, w)

	slog.SetDefault(logger)

	return logger
}
