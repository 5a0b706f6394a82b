package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger

	level = zerolog.InfoLevel
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	SetOutput(os.Stdout, "console")
}

// SetLevel sets the log level
func SetLevel(levelStr string) {
	l, err := zerolog.ParseLevel(levelStr)
	if err != nil || l == zerolog.NoLevel {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		l = zerolog.InfoLevel
	}
	level = l
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
	log.Logger = Log
}

// SetFormat switches stdout logging between "console" and "json".
func SetFormat(format string) {
	SetOutput(os.Stdout, format)
}

// SetOutput rebuilds Log on w. The zerolog/log global follows it, so
// packages logging through either end up in the same place.
func SetOutput(w io.Writer, format string) {
	if !strings.EqualFold(format, "json") {
		// Default to console output with color
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	Log = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
	log.Logger = Log
}

// WithFile returns a child logger tagged with the file being processed.
func WithFile(name string) zerolog.Logger {
	return Log.With().Str("file", name).Logger()
}
