package handlers

import (
	"context"

	"github.com/oaiiae/contacts-book/router"
)

type handler = router.Handler

func handlerWithErrorHandler(handler handler, do func(context.Context, error)) handler {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, args []string) (string, error) {
		o, err := handler(ctx, args)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}
