package rhttp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/advdv/rhttp"
	"github.com/cockroachdb/errors"
)

func Example() {
	mux := rhttp.NewServeMux()

	mux.HandleFunc("GET /items/{id}", func(ctx context.Context, w rhttp.ResponseWriter, r *http.Request) error {
		id := r.PathValue("id")
		if id == "" {
			return rhttp.NewError(rhttp.CodeBadRequest, errors.New("missing id"))
		}

		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(map[string]string{
			"id":   id,
			"name": "Example Item",
		})
	}, "get-item")

	// Generate URL by route name
	loc, _ := mux.Reverse("get-item", "123")
	fmt.Println("URL:", loc)

	// Test the handler
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	mux.ServeHTTP(rec, req)

	fmt.Println("Status:", rec.Code)
	// Output:
	// URL: /items/123
	// Status: 200
}

func ExampleRest() {
	greetings := rhttp.Funcs{
		Get: func(ctx context.Context, r *http.Request) rhttp.Result {
			return rhttp.Obj(map[string]any{"greeting": "hello"})
		},
		Post: func(ctx context.Context, r *http.Request, body any) rhttp.Result {
			doc, ok := body.(map[string]any)
			if !ok {
				return rhttp.NewErrorf(rhttp.CodeBadRequest, "expected a json object")
			}

			return rhttp.WithStatus(http.StatusCreated, rhttp.Obj(doc))
		},
	}

	mux := rhttp.NewServeMux()
	mux.Resource("/greetings", greetings)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/greetings", nil)
	mux.ServeHTTP(rec, req)

	fmt.Println("Status:", rec.Code)
	fmt.Println("Body:", rec.Body.String())
	// Output:
	// Status: 200
	// Body: {"greeting":"hello"}
}

func ExampleGo() {
	slow := rhttp.Funcs{
		Get: func(ctx context.Context, r *http.Request) rhttp.Result {
			// the handler returns immediately, the renderer suspends at the
			// promise until the work settles it
			return rhttp.Go(func() (rhttp.Result, error) {
				return rhttp.Obj(map[string]any{"computed": true}), nil
			})
		},
	}

	mux := rhttp.NewServeMux()
	mux.Resource("/report", slow)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	mux.ServeHTTP(rec, req)

	fmt.Println("Status:", rec.Code)
	fmt.Println("Body:", rec.Body.String())
	// Output:
	// Status: 200
	// Body: {"computed":true}
}

func ExampleFormBody() {
	signup := rhttp.Funcs{
		Post: func(ctx context.Context, r *http.Request, body any) rhttp.Result {
			vals := body.(url.Values)
			return rhttp.Obj(map[string]any{"welcome": vals.Get("name")})
		},
	}

	mux := rhttp.NewServeMux()
	mux.Resource("/signup", signup, rhttp.WithBodyDecoder(rhttp.FormBody()))

	form := url.Values{"name": {"ada"}}
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	fmt.Println("Status:", rec.Code)
	fmt.Println("Body:", rec.Body.String())
	// Output:
	// Status: 200
	// Body: {"welcome":"ada"}
}
