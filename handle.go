package rhttp

import (
	"context"
	"net/http"
)

// ResponseWriter implements http.ResponseWriter but the underlying bytes are buffered. This allows
// middleware and the resource renderer to reset the writer and formulate a completely new response,
// and guarantees a single terminal write per request cycle.
type ResponseWriter interface {
	http.ResponseWriter
	Reset()
	Free()
	FlushBuffer() error
}

// Handler mirrors http.Handler but with an explicit context, a buffered response and an error
// return. Errors that reach the serving boundary are logged and rendered as a plain error page.
type Handler interface {
	ServeRHTTP(ctx context.Context, w ResponseWriter, r *http.Request) error
}

// HandlerFunc allows casting a function to an implementation of [Handler].
type HandlerFunc func(context.Context, ResponseWriter, *http.Request) error

// ServeRHTTP implements the [Handler] interface.
func (f HandlerFunc) ServeRHTTP(ctx context.Context, w ResponseWriter, r *http.Request) error {
	return f(ctx, w, r)
}

// BareHandler describes how middleware serves HTTP requests. The signature for middleware
// differs from that of "leaf" handlers ([Handler]): the context travels inside the request.
type BareHandler interface {
	ServeBareRHTTP(w ResponseWriter, r *http.Request) error
}

// BareHandlerFunc allows casting a function to an implementation of [BareHandler].
type BareHandlerFunc func(ResponseWriter, *http.Request) error

// ServeBareRHTTP implements the [BareHandler] interface.
func (f BareHandlerFunc) ServeBareRHTTP(w ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// ToBare converts a handler 'h' into a bare buffered handler, taking the context from the request.
func ToBare(h Handler) BareHandler {
	return BareHandlerFunc(func(w ResponseWriter, r *http.Request) error {
		return h.ServeRHTTP(r.Context(), w, r)
	})
}

// ToStd converts a bare handler into a standard library http.Handler. The implementation creates a
// buffered response writer and flushes it implicitly after serving the request. An error escaping
// the bare handler resets the buffer and renders a plain error page into it, so the client never
// sees partial content: the response still reaches exactly one terminal state.
func ToStd(h BareHandler, bufLimit int, logs Logger) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		bresp := NewResponseWriter(resp, bufLimit)
		defer bresp.Free()

		if err := h.ServeBareRHTTP(bresp, req); err != nil {
			logs.LogUnhandledServeError(err)
			bresp.Reset()

			// coded errors carry a client-safe message, anything else renders
			// as a generic 500 so internals never leak
			if pageErr, ok := asError(err); ok {
				http.Error(bresp, pageErr.Error(), int(pageErr.Code()))
			} else {
				http.Error(bresp,
					http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}

		if err := bresp.FlushBuffer(); err != nil {
			logs.LogImplicitFlushError(err)
		}
	})
}
