// Package logging builds the zerolog loggers shared by every service.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the service name.  In dev the output is
// a human-readable console stream, otherwise one JSON object per line.
func New(service, env string) zerolog.Logger {
	return NewWithWriter(os.Stdout, service, env)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, service, env string) zerolog.Logger {
	level := zerolog.InfoLevel
	if env == "dev" {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
