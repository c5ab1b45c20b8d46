package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger configured by Init.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// New builds a logger writing to w. format "json" emits JSON lines; anything
// else uses the console writer.
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}

// Init configures Logger and the zerolog global logger. Contexts without a
// request logger fall back to Logger.
func Init(level, format string) {
	Logger = New(os.Stdout, level, format)
	log.Logger = Logger
	zerolog.DefaultContextLogger = &Logger
}

// WithRequestID adds request ID to logger context
func WithRequestID(requestID string) zerolog.Logger {
	return Logger.With().Str("request_id", requestID).Logger()
}
