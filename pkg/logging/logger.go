// Package logging builds the zerolog loggers used across a run and carries
// them through the pipeline in a context.Context.
//
// Every run, file and row adds its identifier to the context logger, so a
// conversion warning logged deep inside the engine reads like:
//
//	{"level":"warn","run_id":"…","file":"data/bank/a.csv","row":3,"field":"date",...}
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/dataunifier/pkg/constants"
)

// Config selects the level, encoding and destination of a logger.
type Config struct {
	// Level is a zerolog level name. Unknown names mean info.
	Level string
	// Format is json, console or auto. Auto picks console when the
	// output is a terminal.
	Format string
	// Output is stderr, stdout, discard or a file path opened for append.
	Output string
	// NoColor disables colors in console format.
	NoColor bool
	// AddCaller adds file:line to every entry.
	AddCaller bool
}

// NewLogger builds a logger from cfg and makes its level the zerolog global
// level.
func NewLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(encoder(cfg, destination(cfg.Output))).
		Level(level).
		With().
		Timestamp().
		Logger()
	if cfg.AddCaller {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// destination opens the log output. A file that cannot be opened falls back
// to stderr so logging never stops a run.
func destination(output string) io.Writer {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

func encoder(cfg Config, out io.Writer) io.Writer {
	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if isTerminal(out) {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: cfg.NoColor}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// fallback serves contexts that carry no logger.
var fallback = zerolog.New(encoder(Config{NoColor: os.Getenv("NO_COLOR") != ""}, os.Stderr)).
	Level(zerolog.InfoLevel).
	With().
	Timestamp().
	Logger()
