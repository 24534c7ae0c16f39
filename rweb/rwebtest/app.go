// Package rwebtest provides test helpers for rweb applications.
//
// It constructs the identical DI graph as [rweb.NewApp] but uses
// [fxtest.App] which fails the test immediately on DI errors.
//
// Example:
//
//	rwebtest.SetBaseEnv(t, 18081)
//	app := rwebtest.New[TestEnv](t, routing)
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package rwebtest

import (
	"testing"

	"github.com/advdv/rhttp/rweb"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing rweb applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [rweb.NewApp].
func New[E rweb.Environment](t testing.TB, routing any, opts ...rweb.Option) *App {
	return &App{App: fxtest.New(t, rweb.FxOptions[E](routing, opts...)...)}
}
