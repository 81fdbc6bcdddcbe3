// Package router dispatches space separated command lines to handlers.
package router

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Handler runs a command with its arguments and returns the text to print.
type Handler = func(ctx context.Context, args []string) (string, error)

// Middleware wraps the dispatch of every line, known command or not.
type Middleware = func(ctx *Context, next func(*Context))

// ErrInvalidCommand is returned for unknown verbs and wrong argument counts.
var ErrInvalidCommand = errors.New("router: invalid command")

// UserError carries the message shown to the user for a failed command.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Err }

func UserErrorf(err error, format string, a ...any) error {
	return &UserError{Message: fmt.Sprintf(format, a...), Err: err}
}

// Context is the state of one dispatched line. Middlewares read Output and
// Err once next has returned.
type Context struct {
	ctx     context.Context
	Command string
	Args    []string
	Known   bool
	Output  string
	Err     error
}

func (c *Context) Context() context.Context { return c.ctx }

// SetContext replaces the [context.Context] handed to the next middlewares and the handler.
func (c *Context) SetContext(ctx context.Context) { c.ctx = ctx }

type route struct {
	nargs   int
	handler Handler
}

type Router struct {
	routes      map[string]route
	verbs       []string
	middlewares []Middleware
}

func New(opts ...func(*Router)) *Router {
	r := &Router{routes: make(map[string]route)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func OptUseMiddleware(mws ...Middleware) func(*Router) {
	return func(r *Router) { r.Use(mws...) }
}

func OptAutoRegister(server any) func(*Router) {
	return func(r *Router) { AutoRegister(r, server) }
}

func (r *Router) Use(mws ...Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

// Handle registers h for verb, called with exactly nargs arguments.
// Verbs are matched case-insensitively.
func (r *Router) Handle(verb string, nargs int, h Handler) {
	verb = strings.ToLower(verb)
	if _, ok := r.routes[verb]; ok {
		panic("router: duplicate command " + verb)
	}
	r.routes[verb] = route{nargs: nargs, handler: h}
	r.verbs = append(r.verbs, verb)
}

// Verbs lists registered commands in registration order.
func (r *Router) Verbs() []string { return append([]string(nil), r.verbs...) }

// AutoRegister calls every exported method of server named Register*
// that takes a single [*Router].
func AutoRegister(r *Router, server any) {
	v := reflect.ValueOf(server)
	t := v.Type()
	arg := reflect.ValueOf(r)
	for i := range t.NumMethod() {
		name := t.Method(i).Name
		if !strings.HasPrefix(name, "Register") || len(name) == len("Register") {
			continue
		}
		m := v.Method(i)
		if m.Type().NumIn() != 1 || m.Type().In(0) != arg.Type() || m.Type().NumOut() != 0 {
			continue
		}
		m.Call([]reflect.Value{arg})
	}
}

// Dispatch tokenizes line and runs the matching handler through the middlewares.
func (r *Router) Dispatch(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	c := &Context{ctx: ctx}
	if len(fields) > 0 {
		c.Command, c.Args = strings.ToLower(fields[0]), fields[1:]
		_, c.Known = r.routes[c.Command]
	}

	next := r.serve
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		mw, inner := r.middlewares[i], next
		next = func(c *Context) { mw(c, inner) }
	}
	next(c)
	return c.Output, c.Err
}

func (r *Router) serve(c *Context) {
	rt, ok := r.routes[c.Command]
	if !ok || len(c.Args) != rt.nargs {
		c.Err = ErrInvalidCommand
		return
	}
	c.Output, c.Err = rt.handler(c.ctx, c.Args)
}
