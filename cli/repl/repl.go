package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/oaiiae/contacts-book/datastores"
	"github.com/oaiiae/contacts-book/handlers"
	"github.com/oaiiae/contacts-book/router"
)

type SessionOptions struct {
	Prompt string `doc:"prompt printed before each command" default:"Enter a command: "`
}

const (
	welcome        = "Welcome to the assistant bot!"
	invalidCommand = "Invalid command. Try again."
	internalError  = "Something went wrong. Try again."

	maxLineLen = 64 * 1024
)

var errPanic = errors.New("repl: handler panicked")

// Session reads commands line by line and prints their result until
// close/exit or the end of input.
type Session struct {
	prompt  string
	router  *router.Router
	metriks *metrics.Set
	logger  *slog.Logger
	stopped bool
	lineno  int
}

func NewSession(
	options *SessionOptions,
	store datastores.ContactsStore,
	now func() time.Time,
	logger *slog.Logger,
) *Session {
	s := &Session{
		prompt:  options.Prompt,
		metriks: metrics.NewSet(),
		logger:  logger,
	}
	s.metriks.NewGauge("contacts", func() float64 { return float64(store.Len(context.Background())) })
	s.router = router.New(
		router.OptUseMiddleware(
			ctxlog{}.loggerMiddleware(logger, func() int { return s.lineno }),
			meterCommands(s.metriks),
			ctxlog{}.recoverMiddleware(logger),
		),
		router.OptAutoRegister(&handlers.Greeting{}),
		router.OptAutoRegister(&handlers.Session{Stop: func() { s.stopped = true }}),
		router.OptAutoRegister(&handlers.Contacts{
			Store:        store,
			Now:          now,
			ErrorHandler: ctxlog{}.errorHandler(logger),
			Logger:       ctxlog{}.from(logger),
		}),
	)
	return s
}

// Run processes in until close/exit, end of input or ctx cancellation.
// Results and error messages are written to out.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, welcome)

	reader := bufio.NewReaderSize(in, maxLineLen)
	for !s.stopped {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, s.prompt)
		text, tooLong, err := readLine(reader)
		if err == io.EOF {
			fmt.Fprintln(out)
			break
		}
		if err != nil {
			fmt.Fprintln(out)
			return err
		}
		s.lineno++

		if tooLong {
			s.logger.Info("line too long", "line", s.lineno)
			fmt.Fprintln(out, invalidCommand)
			continue
		}

		line := strings.TrimSpace(text)
		if line == "" {
			continue
		}

		output, err := s.router.Dispatch(ctx, line)
		if err != nil {
			output = message(err)
		}
		if output != "" {
			fmt.Fprintln(out, output)
		}
	}

	s.logger.Debug("session closed", "lines", s.lineno)
	return nil
}

// readLine reads up to the next newline. Lines longer than the reader's
// buffer are consumed and reported as too long.
func readLine(r *bufio.Reader) (string, bool, error) {
	b, err := r.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = r.ReadSlice('\n')
		}
		if err != nil && err != io.EOF {
			return "", true, err
		}
		return "", true, nil
	}
	if err != nil && (err != io.EOF || len(b) == 0) {
		return "", false, err
	}
	return string(b), false, nil
}

// WriteMetrics writes the session metrics in Prometheus text format.
func (s *Session) WriteMetrics(w io.Writer) {
	fmt.Fprint(w, joinQuote("build_info{goversion=", runtime.Version(), "} 1\n"))
	s.metriks.WritePrometheus(w)
}

// message returns the text shown to the user for a failed command.
func message(err error) string {
	var userErr *router.UserError
	switch {
	case errors.As(err, &userErr):
		return userErr.Message
	case errors.Is(err, router.ErrInvalidCommand):
		return invalidCommand
	default:
		return internalError
	}
}

// ctxlog is a [context.Context] key and acts as a virtual package for operations related to it.
type ctxlog struct{}

// from returns a function that gets the [slog.Logger] from [context.Context].
func (key ctxlog) from(fallback *slog.Logger) func(context.Context) *slog.Logger {
	return func(ctx context.Context) *slog.Logger {
		logger, ok := ctx.Value(key).(*slog.Logger)
		if !ok {
			return fallback
		}
		return logger
	}
}

// loggerMiddleware returns a middleware that sets a [slog.Logger] in
// the [context.Context] and logs the command after it has terminated.
func (key ctxlog) loggerMiddleware(parent *slog.Logger, lineno func() int) router.Middleware {
	return func(ctx *router.Context, next func(*router.Context)) {
		logger := parent.With("line", lineno(), "cmd", ctx.Command)

		start := time.Now()
		ctx.SetContext(context.WithValue(ctx.Context(), key, logger))
		next(ctx)

		logger.LogAttrs(context.Background(), slog.LevelDebug, "command done",
			slog.Int("args", len(ctx.Args)),
			slog.Bool("ok", ctx.Err == nil),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

// recoverMiddleware returns a middleware that recovers and logs the value from panic.
// The command then fails with an internal error.
func (key ctxlog) recoverMiddleware(fallback *slog.Logger) router.Middleware {
	return func(ctx *router.Context, next func(*router.Context)) {
		defer func() {
			v := recover()
			if v != nil {
				key.from(fallback)(ctx.Context()).LogAttrs(context.Background(), slog.LevelError,
					"panic occurred", slog.Any("recovered", v))
				ctx.Output, ctx.Err = "", errPanic
			}
		}()
		next(ctx)
	}
}

// errorHandler returns a function that gets the [slog.Logger] from [context.Context] and logs the error.
func (key ctxlog) errorHandler(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var userErr *router.UserError
		if errors.As(err, &userErr) {
			level = slog.LevelInfo
			if userErr.Err != nil {
				attrs[0] = slog.Any("err", userErr.Err)
			}
			attrs = append(attrs, slog.String("reply", userErr.Message))
		}

		key.from(fallback)(ctx).LogAttrs(context.Background(), level, "error occurred", attrs...)
	}
}

func meterCommands(set *metrics.Set) router.Middleware {
	buckets := metrics.ExponentialBuckets(1e-6, 10, 6) //nolint: mnd // arbitrary

	return func(ctx *router.Context, next func(*router.Context)) {
		start := time.Now()
		next(ctx)

		command := ctx.Command
		if !ctx.Known {
			command = "unknown"
		}
		status := "ok"
		switch {
		case errors.Is(ctx.Err, router.ErrInvalidCommand):
			status = "invalid"
		case ctx.Err != nil:
			status = "error"
		}

		set.GetOrCreateCounter(joinQuote("commands_total{command=", command, ",status=", status, "}")).Inc()
		set.GetOrCreatePrometheusHistogramExt(
			joinQuote("command_duration_seconds{command=", command, "}"), buckets,
		).UpdateDuration(start)
	}
}

// joinQuote is [strings.Join] with " as separator.
func joinQuote(elems ...string) string { return strings.Join(elems, `"`) }
