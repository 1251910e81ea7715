package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the root logger for the process. Development gets a console
// writer, everything else structured JSON on stderr. Components receive
// a child of this logger through their constructors; nothing reads a
// global sink.
func New(env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if env == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.Level(lvl).With().Timestamp().Logger()
}
