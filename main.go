package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/oaiiae/contacts-book/cli/logger"
	"github.com/oaiiae/contacts-book/cli/repl"
	"github.com/oaiiae/contacts-book/datastores"
)

// Options for the CLI. Pass `--log-level` or set the `SERVICE_LOG_LEVEL` env var.
type Options struct {
	logger.Options
	repl.SessionOptions
	MetricsFile string `doc:"write session metrics to file on exit"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options)
		session := repl.NewSession(&options.SessionOptions, datastores.NewContactsInmem(), time.Now, log)

		hooks.OnStart(func() {
			err := session.Run(context.Background(), os.Stdin, os.Stdout)
			if err != nil {
				log.Error("session failed", "err", err)
			}
			writeMetrics(options.MetricsFile, session, log)
		})
		hooks.OnStop(func() {
			writeMetrics(options.MetricsFile, session, log)
		})
	})
	cli.Run()
}

func writeMetrics(path string, session *repl.Session, log *slog.Logger) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Warn("could not create metrics file", "err", err)
		return
	}
	defer f.Close()
	session.WriteMetrics(f)
}
