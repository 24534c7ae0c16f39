package rhttp

import (
	"context"
	"net/http"
	"sort"
)

// ResourceHandler produces the result of one verb on a resource. For
// body-bearing verbs (POST, PUT, PATCH) body holds the decoded request body;
// for all other verbs it is nil.
type ResourceHandler func(ctx context.Context, r *http.Request, body any) Result

// Resource is a container of verb handlers. The resolver asks it for the
// handler matching the request's method (exact uppercase match) and falls
// back to the catch-all. How a resource stores its handlers is its own
// business; [Funcs] is the common literal form.
type Resource interface {
	// HandlerFor returns the handler for the given uppercase HTTP verb, if any.
	HandlerFor(verb string) (ResourceHandler, bool)

	// CatchAll returns the handler serving any verb without a specific
	// handler, if any.
	CatchAll() (ResourceHandler, bool)
}

// VerbLister is optionally implemented by resources that can enumerate their
// verbs; the renderer uses it to build the Allow header of 405 responses.
type VerbLister interface {
	Verbs() []string
}

// LeafChecker is optionally implemented by resources to tell routing layers
// whether they terminate path traversal. Resources that do not implement it
// are treated as leaves.
type LeafChecker interface {
	Leaf() bool
}

// IsLeaf reports whether res terminates path traversal.
func IsLeaf(res Resource) bool {
	if lc, ok := res.(LeafChecker); ok {
		return lc.Leaf()
	}

	return true
}

// Funcs is a Resource defined as a struct literal of per-verb functions.
// Verbs without body semantics take (ctx, r); body-bearing verbs also get the
// decoded body. Any, when set, serves every verb that has no specific field.
//
//	res := rhttp.Funcs{
//	    Get: func(ctx context.Context, r *http.Request) rhttp.Result {
//	        return rhttp.Obj(map[string]any{"hello": "world"})
//	    },
//	    Post: func(ctx context.Context, r *http.Request, body any) rhttp.Result {
//	        return rhttp.Obj(body)
//	    },
//	}
type Funcs struct {
	Get     func(ctx context.Context, r *http.Request) Result
	Head    func(ctx context.Context, r *http.Request) Result
	Delete  func(ctx context.Context, r *http.Request) Result
	Options func(ctx context.Context, r *http.Request) Result

	Post  func(ctx context.Context, r *http.Request, body any) Result
	Put   func(ctx context.Context, r *http.Request, body any) Result
	Patch func(ctx context.Context, r *http.Request, body any) Result

	// Any is the catch-all. It receives the decoded body only when the
	// request verb has body semantics, nil otherwise.
	Any func(ctx context.Context, r *http.Request, body any) Result

	// Branch marks the resource as a non-leaf for routing layers.
	Branch bool
}

// HandlerFor implements [Resource].
func (f Funcs) HandlerFor(verb string) (ResourceHandler, bool) {
	if h := f.bodyless(verb); h != nil {
		return func(ctx context.Context, r *http.Request, _ any) Result {
			return h(ctx, r)
		}, true
	}

	if h := f.bodied(verb); h != nil {
		return ResourceHandler(h), true
	}

	return nil, false
}

// CatchAll implements [Resource].
func (f Funcs) CatchAll() (ResourceHandler, bool) {
	if f.Any == nil {
		return nil, false
	}

	return ResourceHandler(f.Any), true
}

// Verbs implements [VerbLister].
func (f Funcs) Verbs() []string {
	var verbs []string
	for _, verb := range []string{
		http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions,
		http.MethodPost, http.MethodPut, http.MethodPatch,
	} {
		if _, ok := f.HandlerFor(verb); ok {
			verbs = append(verbs, verb)
		}
	}

	sort.Strings(verbs)

	return verbs
}

// Leaf implements [LeafChecker].
func (f Funcs) Leaf() bool { return !f.Branch }

func (f Funcs) bodyless(verb string) func(context.Context, *http.Request) Result {
	switch verb {
	case http.MethodGet:
		return f.Get
	case http.MethodHead:
		return f.Head
	case http.MethodDelete:
		return f.Delete
	case http.MethodOptions:
		return f.Options
	default:
		return nil
	}
}

func (f Funcs) bodied(verb string) func(context.Context, *http.Request, any) Result {
	switch verb {
	case http.MethodPost:
		return f.Post
	case http.MethodPut:
		return f.Put
	case http.MethodPatch:
		return f.Patch
	default:
		return nil
	}
}
