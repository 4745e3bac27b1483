package logger

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "laundromat"

// New creates a preconfigured slog.Logger tagged with the service name.
func New() *slog.Logger {
	return newLogger(os.Stdout)
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", serviceName))
}
