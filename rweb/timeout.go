package rweb

import (
	"context"
	"net/http"
	"time"

	"github.com/advdv/rhttp"
)

// Timeout Configuration
//
// This file implements timeout handling for services that sit behind a
// reverse proxy or load balancer rather than facing the internet directly.
//
// # Background
//
// The Cloudflare blog post "So you want to expose Go on the Internet" (2016)
// recommends setting ReadTimeout, WriteTimeout, and IdleTimeout to protect against
// slow clients and resource exhaustion attacks. These timeouts guard against:
//   - Slowloris attacks (slow request headers/body)
//   - Connection exhaustion from stalled clients
//   - File descriptor leaks from abandoned connections
//
// # Timeout Strategy
//
// We use a two-tier approach:
//
//  1. Server-level timeouts: Based on REQUEST_TIMEOUT (infrastructure config).
//     These act as an outer bound and catch cases where per-request context is
//     unavailable.
//
//  2. Per-request deadline: The WithRequestDeadline middleware sets a context
//     deadline on every request, so handlers and deferred results observe
//     cancellation through the context rather than through a severed
//     connection.
//
// The per-request deadline includes a small buffer (default 500ms) to allow
// for graceful error responses and cleanup before the server-level timeout
// severs the connection.
//
// # References
//
//   - Cloudflare: https://blog.cloudflare.com/exposing-go-on-the-internet/

// DefaultDeadlineBuffer is the default time reserved before the server-level
// timeout for cleanup, error responses, and graceful shutdown.
const DefaultDeadlineBuffer = 500 * time.Millisecond

// TimeoutConfig holds timeout configuration for the HTTP server.
type TimeoutConfig struct {
	// RequestTimeout is the configured bound for a whole request.
	// Used as the basis for server-level timeouts.
	RequestTimeout time.Duration

	// DeadlineBuffer is subtracted from RequestTimeout for the per-request
	// context deadline, to allow time for cleanup and error responses.
	// Defaults to DefaultDeadlineBuffer.
	DeadlineBuffer time.Duration
}

// ServerTimeouts returns the recommended http.Server timeout values based on
// the request timeout. These serve as outer bounds; the per-request context
// deadline from the WithRequestDeadline middleware fires first.
func (tc TimeoutConfig) ServerTimeouts() (readHeaderTimeout, readTimeout, writeTimeout, idleTimeout time.Duration) {
	timeout := tc.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// ReadHeaderTimeout: How long to wait for request headers. Headers from a
	// local proxy arrive quickly; cap at the effective timeout.
	readHeaderTimeout = min(timeout, 5*time.Second)

	// ReadTimeout: Time from connection accept to request body fully read.
	readTimeout = timeout

	// WriteTimeout: Time from request header read end to response write end.
	writeTimeout = timeout

	// IdleTimeout: How long to keep idle keep-alive connections.
	idleTimeout = timeout

	return
}

// WithRequestDeadline returns middleware that sets a context deadline of
// timeout minus buffer on every request.
//
// The deadline fires before the server-level write timeout, so a request that
// runs long is canceled through the context while the connection can still
// carry an error response. Deferred results awaiting settlement observe the
// same cancellation.
func WithRequestDeadline(timeout, buffer time.Duration) rhttp.Middleware {
	if buffer <= 0 {
		buffer = DefaultDeadlineBuffer
	}

	effective := timeout - buffer
	if effective <= 0 {
		effective = timeout
	}

	return func(next rhttp.BareHandler) rhttp.BareHandler {
		return rhttp.BareHandlerFunc(func(w rhttp.ResponseWriter, r *http.Request) error {
			if effective <= 0 {
				return next.ServeBareRHTTP(w, r)
			}

			ctx, cancel := context.WithTimeout(r.Context(), effective)
			defer cancel()

			return next.ServeBareRHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestDeadline returns the context deadline for the current request.
// Returns the zero time and false if no deadline is set.
func RequestDeadline(ctx context.Context) (time.Time, bool) {
	return ctx.Deadline()
}

// RequestRemainingTime returns the duration until the request context deadline.
// Returns 0 if no deadline is set or if the deadline has passed.
func RequestRemainingTime(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	remaining := time.Until(deadline)
	if remaining < 0 {
		return 0
	}
	return remaining
}
