package rhttp

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	res := Funcs{
		Get: func(ctx context.Context, r *http.Request) Result {
			return Text("got")
		},
		Post: func(ctx context.Context, r *http.Request, body any) Result {
			return Obj(body)
		},
	}

	t.Run("exact verb", func(t *testing.T) {
		inv, pageErr := resolve(res, http.MethodGet)
		require.Nil(t, pageErr)
		require.NotNil(t, inv.handler)
		assert.False(t, inv.readBody)
		assert.False(t, inv.headOnly)
	})

	t.Run("body bearing verb reads the body", func(t *testing.T) {
		inv, pageErr := resolve(res, http.MethodPost)
		require.Nil(t, pageErr)
		assert.True(t, inv.readBody)
	})

	t.Run("head falls back to get", func(t *testing.T) {
		inv, pageErr := resolve(res, http.MethodHead)
		require.Nil(t, pageErr)
		require.NotNil(t, inv.handler)
		assert.True(t, inv.headOnly)
		assert.False(t, inv.readBody)
	})

	t.Run("explicit head wins over get", func(t *testing.T) {
		headed := Funcs{
			Get: func(ctx context.Context, r *http.Request) Result {
				return Text("from get")
			},
			Head: func(ctx context.Context, r *http.Request) Result {
				return Text("from head")
			},
		}

		inv, pageErr := resolve(headed, http.MethodHead)
		require.Nil(t, pageErr)

		raw, ok := inv.handler(context.Background(), nil, nil).(rawResult)
		require.True(t, ok)
		assert.Equal(t, "from head", string(raw.p))
	})

	t.Run("catch-all serves the rest", func(t *testing.T) {
		anyRes := Funcs{Any: func(ctx context.Context, r *http.Request, body any) Result {
			return nil
		}}

		inv, pageErr := resolve(anyRes, http.MethodDelete)
		require.Nil(t, pageErr)
		require.NotNil(t, inv.handler)
	})

	t.Run("unresolvable verb is a 405", func(t *testing.T) {
		_, pageErr := resolve(res, http.MethodDelete)
		require.NotNil(t, pageErr)
		assert.Equal(t, CodeMethodNotAllowed, pageErr.Code())
		assert.Equal(t, "method DELETE is not allowed", pageErr.Message())
	})
}

func TestBodyBearing(t *testing.T) {
	for verb, expect := range map[string]bool{
		http.MethodGet: false, http.MethodHead: false, http.MethodDelete: false,
		http.MethodOptions: false, http.MethodPost: true, http.MethodPut: true,
		http.MethodPatch: true,
	} {
		assert.Equal(t, expect, bodyBearing(verb), verb)
	}
}

func TestAllowHeader(t *testing.T) {
	t.Run("get implies head", func(t *testing.T) {
		res := Funcs{
			Get: func(ctx context.Context, r *http.Request) Result {
				return nil
			},
			Delete: func(ctx context.Context, r *http.Request) Result {
				return nil
			},
		}

		assert.Equal(t, "DELETE, GET, HEAD", allowHeader(res))
	})

	t.Run("explicit head is not doubled", func(t *testing.T) {
		res := Funcs{
			Get: func(ctx context.Context, r *http.Request) Result {
				return nil
			},
			Head: func(ctx context.Context, r *http.Request) Result {
				return nil
			},
		}

		assert.Equal(t, "GET, HEAD", allowHeader(res))
	})

	t.Run("verbless resources have no allow value", func(t *testing.T) {
		assert.Empty(t, allowHeader(Funcs{}))
	})
}
