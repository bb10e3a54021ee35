package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// L defaults to the zerolog global so code paths hit before (or
// without) Init still log somewhere sensible.
var L = log.Logger

// Init configures the process logger. Pretty mode uses the console
// writer for local development; otherwise plain JSON lines go to stdout.
func Init(pretty bool) {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	L = log.Output(w).With().Timestamp().Logger()
}
