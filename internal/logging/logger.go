package logging

import (
	"log/slog"
	"os"
)

const serviceName = "pedeai-backend"

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(NewLogger(handler))
}

// NewLogger wraps a handler with the service attribute every record carries,
// so aggregated logs stay filterable once they leave the process.
func NewLogger(handler slog.Handler) *slog.Logger {
	return slog.New(handler).With("service", serviceName)
}
