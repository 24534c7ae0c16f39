// Package rweb provides a batteries-included runtime for HTTP services built on rhttp resources.
//
// # Overview
//
// rweb handles the boilerplate of setting up an HTTP service: environment
// parsing, structured logging, OpenTelemetry tracing, secrets, request
// deadlines, and graceful shutdown. A complete application can be created in
// a single call:
//
//	rweb.NewApp[Env](func(m *rweb.Mux, h *Handlers) {
//	    m.Resource("/items/{id}", h.Item())
//	    m.HandleFunc("GET /items", h.ListItems, "list-items")
//	},
//	    rweb.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    rweb.BaseEnvironment
//	    MainTableName string `env:"MAIN_TABLE_NAME,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable              | Required | Default  | Description                                  |
//	|-----------------------|----------|----------|----------------------------------------------|
//	| PORT                  | Yes      | -        | Port the HTTP server listens on              |
//	| SERVICE_NAME          | Yes      | -        | Service name for logging and tracing         |
//	| READINESS_CHECK_PATH  | No       | /healthz | Health check endpoint path                   |
//	| LOG_LEVEL             | No       | info     | Log level (debug, info, warn, error)         |
//	| OTEL_EXPORTER         | No       | stdout   | Trace exporter: "stdout" or "off"            |
//	| REQUEST_TIMEOUT       | No       | 30s      | Outer bound for a whole request              |
//	| H2C                   | No       | false    | Serve cleartext HTTP/2                       |
//	| SECRETS_FILE          | No       | -        | JSON file holding secret values              |
//
// # Runtime
//
// [Runtime] provides access to app-scoped dependencies and should be injected
// into handler constructors via fx. This follows idiomatic Go patterns where
// app-level dependencies are passed explicitly, not pulled from context.
//
// Runtime provides:
//   - [Runtime.Env] returns the typed environment configuration
//   - [Runtime.Reverse] generates URLs for named routes
//   - [Runtime.Secret] retrieves secrets from the configured reader
//   - [Runtime.NewRequest] returns a traced outbound request builder
//
// # Secrets
//
// [Runtime.Secret] retrieves secrets through the [SecretReader] interface.
// When SECRETS_FILE is set, secrets come from that JSON file (re-read per
// request so rotation needs no redeployment); otherwise from SECRET_* env
// vars. Override with [WithSecretReader].
//
//	// Raw string secret
//	apiKey, err := h.rt.Secret(ctx, "my-api-key")
//
//	// JSON secret with nested path extraction (uses gjson syntax)
//	password, err := h.rt.Secret(ctx, "my-db-credentials", "database.password")
//
// # Context
//
// Handlers receive a standard context.Context. Use the package-level functions
// to access request-scoped values:
//
//   - [Log] - trace-correlated zap logger
//   - [Span] - current OpenTelemetry span for custom instrumentation
//
// # Tracing
//
// OpenTelemetry tracing is configured automatically based on OTEL_EXPORTER:
//
//   - "stdout" (default): Pretty-printed spans for local development
//   - "off": No-op tracer provider
//
// The tracer provider and propagator are injected explicitly (no globals),
// allowing for proper testing and isolation. Outbound requests through
// [Runtime.NewRequest] or the injected *http.Client become child spans with
// propagated context headers.
//
// # Timeouts
//
// A two-tier timeout strategy is used:
//
//  1. Server-level timeouts: Based on REQUEST_TIMEOUT, these act as outer bounds.
//  2. Per-request deadline: The [WithRequestDeadline] middleware sets a
//     context deadline of REQUEST_TIMEOUT minus a 500ms buffer, so handlers
//     and deferred results observe cancellation with time left for a
//     graceful error response.
//
// Use [RequestDeadline] and [RequestRemainingTime] to check the effective
// deadline. See timeout.go for the rationale.
//
// # Testing
//
// The companion [rwebtest] package unit-tests handlers without the full
// server: [rwebtest.CallHandler] handles the buffered writer boilerplate, and
// [rwebtest.New] builds the identical DI graph on fxtest. Combine with
// [WithLogger] for handlers that call [Log]:
//
//	ctx := rweb.WithLogger(context.Background(), zap.NewNop())
//	req := httptest.NewRequest(http.MethodGet, "/items", nil).WithContext(ctx)
//	rec := rwebtest.CallHandler(h.ListItems, req)
//
// # Health Checks
//
// A health endpoint is automatically registered at READINESS_CHECK_PATH.
// Customize with [WithHealthHandler].
//
// # Dependency Injection
//
// rweb uses [go.uber.org/fx] for dependency injection. Add custom providers
// with [WithFx]:
//
//	rweb.WithFx(
//	    fx.Provide(NewHandlers),
//	    fx.Provide(NewRepository),
//	)
package rweb
