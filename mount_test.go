package rhttp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/rhttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func apiHandler() rhttp.BareHandler {
	return rhttp.BareHandlerFunc(func(w rhttp.ResponseWriter, r *http.Request) error {
		fmt.Fprintf(w, "path:%s", r.URL.Path)
		return nil
	})
}

func TestMountBareSubPath(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.MountBare("/api", apiHandler())

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "path:/users", rec.Body.String())
}

func TestMountBareExactPrefix(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.MountBare("/api", apiHandler())

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "path:/", rec.Body.String())
}

func TestMountBareDeeplyNested(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.MountBare("/api", apiHandler())

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/users/123", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "path:/v1/users/123", rec.Body.String())
}

type ctxKey string

func TestMountBareMiddlewareSeesOriginalPath(t *testing.T) {
	mux := rhttp.NewServeMux()

	mux.Use(func(next rhttp.BareHandler) rhttp.BareHandler {
		return rhttp.BareHandlerFunc(func(w rhttp.ResponseWriter, r *http.Request) error {
			ctx := context.WithValue(r.Context(), ctxKey("mw_path"), r.URL.Path)
			return next.ServeBareRHTTP(w, r.WithContext(ctx))
		})
	})

	mux.MountBare("/api", rhttp.BareHandlerFunc(func(w rhttp.ResponseWriter, r *http.Request) error {
		mwPath := r.Context().Value(ctxKey("mw_path")).(string)
		fmt.Fprintf(w, "mw:%s,handler:%s", mwPath, r.URL.Path)
		return nil
	}))

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "mw:/api/users,handler:/users", rec.Body.String())
}

func TestMountBareErrorHandling(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.MountBare("/api", rhttp.BareHandlerFunc(func(w rhttp.ResponseWriter, r *http.Request) error {
		return errors.New("something broke")
	}))

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/fail", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal Server Error\n", rec.Body.String())
}

func TestMountBareUseAfterMount(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.MountBare("/api", apiHandler())

	require.PanicsWithValue(t, "rhttp: cannot call Use() after calling Handle", func() {
		mux.Use(middleware1)
	})
}

func TestMountSubPath(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.Mount("/api", rhttp.HandlerFunc(func(ctx context.Context, w rhttp.ResponseWriter, r *http.Request) error {
		fmt.Fprintf(w, "path:%s", r.URL.Path)
		return nil
	}))

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "path:/users", rec.Body.String())
}

func TestMountFuncError(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.MountFunc("/api", func(_ context.Context, _ rhttp.ResponseWriter, _ *http.Request) error {
		return rhttp.NewError(rhttp.CodeNotFound, errors.New("not found"))
	})

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/missing", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not Found: not found\n", rec.Body.String())
}

func TestMountFuncWithMethodPattern(t *testing.T) {
	mux := rhttp.NewServeMux()
	mux.MountFunc("POST /api", func(_ context.Context, w rhttp.ResponseWriter, r *http.Request) error {
		fmt.Fprintf(w, "posted:%s", r.URL.Path)
		return nil
	})

	t.Run("POST works", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/create", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "posted:/create", rec.Body.String())
	})

	t.Run("GET returns 405", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/create", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestMountStdSubPath(t *testing.T) {
	stdHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "std:%s", r.URL.Path)
	})

	mux := rhttp.NewServeMux()
	mux.MountStd("/static", stdHandler)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/style.css", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "std:/style.css", rec.Body.String())
}

func TestMountStdHandlerOwnsErrorResponse(t *testing.T) {
	stdHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "custom not found", http.StatusNotFound)
	})

	mux := rhttp.NewServeMux()
	mux.MountStd("/static", stdHandler)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/missing", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "custom not found\n", rec.Body.String())
}

func TestMountResource(t *testing.T) {
	// the resource routes on the remaining path after the mount point and
	// delegates item requests to a sub-resource
	item := func(id string) rhttp.Resource {
		return rhttp.Funcs{
			Get: func(ctx context.Context, r *http.Request) rhttp.Result {
				return rhttp.Obj(map[string]any{"id": id})
			},
		}
	}

	root := rhttp.Funcs{
		Get: func(ctx context.Context, r *http.Request) rhttp.Result {
			if r.URL.Path == "/" {
				return rhttp.Obj([]any{"a", "b"})
			}

			return rhttp.Delegate(item(r.URL.Path[1:]))
		},
		Branch: true,
	}

	mux := rhttp.NewServeMux()
	mux.MountResource("/items", root)

	t.Run("mount point lists", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `["a","b"]`, rec.Body.String())
	})

	t.Run("sub-path delegates", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var page map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Equal(t, "42", page["id"])
	})
}

func TestMountStdWithMethodPattern(t *testing.T) {
	stdHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "std:%s", r.URL.Path)
	})

	mux := rhttp.NewServeMux()
	mux.MountStd("GET /static", stdHandler)

	t.Run("GET works", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/file", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "std:/file", rec.Body.String())
	})

	t.Run("POST returns 405", func(t *testing.T) {
		rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/static/file", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
