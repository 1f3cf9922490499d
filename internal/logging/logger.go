// Package logging builds the zerolog loggers used by sitab commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error"; empty means "info"). With console set, output is human
// readable instead of JSON. The global zerolog logger is replaced as well.
func New(w io.Writer, level string, console bool) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl := zerolog.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), err
		}
		lvl = parsed
	}

	if console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "sitabcomp").Logger()
	log.Logger = logger

	return logger, nil
}
