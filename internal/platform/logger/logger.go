package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a structured JSON logger using slog. The level can be lowered
// to debug with LOANLINK_LOG_LEVEL=debug; secondary-provider failures are
// logged at debug because they are recovered locally.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a JSON logger writing to w. Used by tests and the CLI,
// which keeps stdout free for command output.
func NewWithWriter(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOANLINK_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
