// Package example implements example middleware in an outside package.
package example

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/advdv/rhttp"
)

// ctxKey type scopes middlware values.
type ctxKey string

// Middleware provides an example for middleware that adds a logger to the context.
func Middleware(logs *slog.Logger) rhttp.Middleware {
	return func(n rhttp.BareHandler) rhttp.BareHandler {
		return rhttp.BareHandlerFunc(func(w rhttp.ResponseWriter, r *http.Request) error {
			logs := logs.With(slog.String("method", r.Method))

			ctx := context.WithValue(r.Context(), ctxKey("slog"), logs)

			return n.ServeBareRHTTP(w, r.WithContext(ctx))
		})
	}
}

func Log(ctx context.Context) *slog.Logger {
	v, _ := ctx.Value(ctxKey("slog")).(*slog.Logger)

	return v
}
