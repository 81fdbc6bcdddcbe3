package handlers

import (
	"context"

	"github.com/oaiiae/contacts-book/router"
)

type Greeting struct{}

func (h *Greeting) RegisterHello(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("hello", 0, h.handle)
	r.Handle("hi", 0, h.handle)
}

func (h *Greeting) handle(context.Context, []string) (string, error) {
	return "How can I help you?", nil
}
