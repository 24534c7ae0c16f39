package rhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderFinishedCycleIsNoop(t *testing.T) {
	logs := NewTestLogger(t)
	rr := NewRenderer(Funcs{
		Get: func(ctx context.Context, r *http.Request) Result {
			return Obj(map[string]any{"should": "not render"})
		},
	}, WithLogger(logs))

	ctx := context.WithValue(context.Background(), cycleKey{}, &cycle{finished: true})

	rec := httptest.NewRecorder()
	bresp := NewResponseWriter(rec, -1)
	defer bresp.Free()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, rr.Render(ctx, bresp, req))
	require.NoError(t, bresp.FlushBuffer())

	require.Empty(t, rec.Body.String())
	require.Equal(t, int64(1), logs.NumLogUnhandledServeError)
}

func TestRenderSharesCycleAcrossDelegation(t *testing.T) {
	leaf := Funcs{
		Get: func(ctx context.Context, r *http.Request) Result {
			cyc, ok := ctx.Value(cycleKey{}).(*cycle)
			require.True(t, ok)
			require.Equal(t, 2, cyc.depth)

			return Obj(map[string]any{"at": "leaf"})
		},
	}

	mid := Funcs{
		Get: func(ctx context.Context, r *http.Request) Result {
			return Delegate(leaf)
		},
	}

	root := Funcs{
		Get: func(ctx context.Context, r *http.Request) Result {
			return Delegate(mid)
		},
	}

	rec := httptest.NewRecorder()
	bresp := NewResponseWriter(rec, -1)
	defer bresp.Free()

	rr := NewRenderer(root, WithLogger(NewTestLogger(t)))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, rr.Render(context.Background(), bresp, req))
	require.NoError(t, bresp.FlushBuffer())

	require.JSONEq(t, `{"at":"leaf"}`, rec.Body.String())
}
