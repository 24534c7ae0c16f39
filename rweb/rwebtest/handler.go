package rwebtest

import (
	"net/http"
	"net/http/httptest"

	"github.com/advdv/rhttp"
)

// CallHandler invokes a [rhttp.HandlerFunc] with a buffered response writer and
// returns the recorded response. It handles the boilerplate of wrapping
// [httptest.ResponseRecorder] in a [rhttp.ResponseWriter] and flushing the
// buffer afterward.
func CallHandler(handler rhttp.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	w := rhttp.NewResponseWriter(rec, -1)

	if err := handler(req.Context(), w, req); err != nil {
		panic("rwebtest: handler returned error: " + err.Error())
	}

	if err := w.FlushBuffer(); err != nil {
		panic("rwebtest: FlushBuffer failed: " + err.Error())
	}

	return rec
}

// CallResource dispatches req against a resource and returns the recorded
// response, including rendered error pages.
func CallResource(res rhttp.Resource, req *http.Request, opts ...rhttp.Option) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	w := rhttp.NewResponseWriter(rec, -1)

	if err := rhttp.Rest(res, opts...).ServeRHTTP(req.Context(), w, req); err != nil {
		panic("rwebtest: resource render failed: " + err.Error())
	}

	if err := w.FlushBuffer(); err != nil {
		panic("rwebtest: FlushBuffer failed: " + err.Error())
	}

	return rec
}
