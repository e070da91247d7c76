package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var (
	Debug    zerolog.Logger
	Layout   zerolog.Logger
	Grouping zerolog.Logger
	Source   zerolog.Logger
	Enabled  bool

	// Sink is where all component loggers write; io.Discard unless enabled.
	Sink io.Writer = io.Discard
)

func init() {
	// Only enable logging if GROUPVIEW_DEBUG environment variable is set
	if os.Getenv("GROUPVIEW_DEBUG") == "" {
		setup(io.Discard)
		return
	}

	Enabled = true

	// Open debug.log once for all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		setup(zerolog.ConsoleWriter{Out: os.Stderr})
		return
	}
	setup(debugFile)
}

// setup points every component logger at w.
func setup(w io.Writer) {
	Sink = w
	base := zerolog.New(w).With().Timestamp().Logger()
	if w == io.Discard {
		base = base.Level(zerolog.Disabled)
	}
	Debug = base.With().Str("component", "debug").Logger()
	Layout = base.With().Str("component", "layout").Logger()
	Grouping = base.With().Str("component", "grouping").Logger()
	Source = base.With().Str("component", "source").Logger()
}

// SetOutput redirects all loggers, used by tests to capture warnings.
func SetOutput(w io.Writer) {
	Enabled = w != io.Discard
	setup(w)
}
