package rweb

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// AppConfig holds configuration for the app.
type AppConfig struct {
	ServerConfig
	SecretReader SecretReader
	FxOptions    []fx.Option
}

// Option configures the App.
type Option func(*AppConfig)

// runtimeProviderParams holds dependencies for Runtime.
type runtimeProviderParams[E Environment] struct {
	fx.In

	Env          E
	Mux          *Mux
	SecretReader SecretReader
	Transport    http.RoundTripper
}

// WithFx adds fx options for dependency injection.
func WithFx(fxOpts ...fx.Option) Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions, fxOpts...)
	}
}

// WithHealthHandler sets a custom health check handler.
// If not set, a default handler returning 200 OK is used.
func WithHealthHandler(h func(http.ResponseWriter, *http.Request)) Option {
	return func(c *AppConfig) {
		c.HealthHandler = h
	}
}

// WithSecretReader overrides the secret reader. By default secrets come from
// the SECRETS_FILE JSON file when configured, else from SECRET_* env vars.
func WithSecretReader(r SecretReader) Option {
	return func(c *AppConfig) {
		c.SecretReader = r
	}
}

// FxOptions returns the full fx option set that NewApp would run with. It is
// exported so the rwebtest harness can build the identical graph.
func FxOptions[E Environment](routing any, opts ...Option) []fx.Option {
	var cfg AppConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	baseOpts := make([]fx.Option, 0, 14+len(cfg.FxOptions))
	baseOpts = append(baseOpts, []fx.Option{
		fx.NopLogger,
		fx.Provide(ParseEnv[E]()),
		fx.Provide(func(e E) Environment { return e }),
		fx.Provide(func(e E) (*zap.Logger, error) { return NewLogger(e) }),
		fx.Provide(NewMux),
		fx.Provide(NewTracerProvider),
		fx.Provide(NewPropagator),
		fx.Provide(NewHTTPTransport),
		fx.Provide(NewHTTPClient),
		fx.Provide(func(e E) SecretReader {
			if cfg.SecretReader != nil {
				return cfg.SecretReader
			}
			if path := e.secretsFile(); path != "" {
				return NewFileSecretReader(path)
			}
			return NewEnvSecretReader()
		}),
		fx.Supply(cfg.ServerConfig),
		fx.Provide(NewServer),
		fx.Provide(func(p runtimeProviderParams[E]) *Runtime[E] {
			return NewRuntime(p.Env, p.Mux, RuntimeParams{
				SecretReader: p.SecretReader,
				Transport:    p.Transport,
			})
		}),
		fx.Invoke(startServerHook),
		fx.Invoke(routing),
	}...)

	baseOpts = append(baseOpts, cfg.FxOptions...)
	return baseOpts
}

// NewApp creates a batteries-included app with dependency injection.
//
// The routing function can request any types that are provided via fx options.
// At minimum, it should accept *Mux for routing.
//
// Example:
//
//	rweb.NewApp[Env](func(m *rweb.Mux, h *Handlers) {
//	    m.Resource("/items/{id}", h.Item(), rhttp.WithCodec(rhttp.JSONCodec{}))
//	},
//	    rweb.WithFx(fx.Provide(NewHandlers)),
//	).Run()
func NewApp[E Environment](routing any, opts ...Option) *App {
	return &App{
		app: fx.New(FxOptions[E](routing, opts...)...),
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() {
	a.app.Run()
}

// Start starts the application with the given context.
func (a *App) Start(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(ctx, a.app.StopTimeout())
	defer cancel()

	return a.app.Stop(stopCtx)
}
