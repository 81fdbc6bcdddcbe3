package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the session logger. Logs default to stderr so they
// stay out of the session output.
type Options struct {
	LogLevel  string `doc:"log from debug, info, warn or error" default:"warn"`
	LogFile   string `doc:"append logs to file"`
	LogFormat string `doc:"format logs as text or json"         default:"text"`
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

func New(options *Options) *slog.Logger {
	return newLogger(options, os.Stderr)
}

func newLogger(options *Options, stderr io.Writer) *slog.Logger {
	level, ok := level(options.LogLevel)
	if !ok {
		options.LogLevel = ""
		logger := newLogger(options, stderr)
		logger.Warn("could not parse logger level")
		return logger
	}
	opts := slog.HandlerOptions{Level: level}

	var output io.Writer
	switch options.LogFile {
	case "", "-":
		output = stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		var err error
		output, err = os.OpenFile(options.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.LogFile = ""
			logger := newLogger(options, stderr)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
	}

	switch strings.ToLower(options.LogFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts))
	case "text":
		return slog.New(slog.NewTextHandler(output, &opts))
	default:
		options.LogFormat = "text"
		logger := newLogger(options, stderr)
		logger.Warn("could not parse logger format")
		return logger
	}
}
