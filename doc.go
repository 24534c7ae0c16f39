// Package rhttp dispatches HTTP requests to verb-addressed REST resources over
// buffered responses.
//
// # Overview
//
// rhttp combines two ideas. The first is the buffered response writer: all
// writes are held in memory until the request cycle completes, so a response
// can be reset and completely rewritten and the client only ever sees one
// terminal response. The second is the resource: a value that declares one
// handler per HTTP verb and returns a [Result] instead of writing bytes
// itself. The renderer reconciles that result into a body, an error page, or
// a delegation to another resource.
//
// A minimal example:
//
//	mux := rhttp.NewServeMux()
//	mux.Resource("/items/{id}", rhttp.Funcs{
//	    Get: func(ctx context.Context, r *http.Request) rhttp.Result {
//	        item, err := db.GetItem(r.PathValue("id"))
//	        if err != nil {
//	            return rhttp.NewError(rhttp.CodeNotFound, err)
//	        }
//	        return rhttp.Obj(map[string]any{"id": item.ID, "name": item.Name})
//	    },
//	})
//
// # Resources and Verb Dispatch
//
// A [Resource] maps HTTP verbs to handlers. The [Funcs] literal covers the
// common case: fields named after verbs, with body-bearing verbs (POST, PUT,
// PATCH) receiving the decoded request body and the others not. An optional
// catch-all handler serves verbs without a dedicated handler; when neither
// exists the renderer writes a 405 error page with an Allow header. HEAD
// requests without an explicit HEAD handler resolve through GET: the body is
// fully computed so Content-Length is accurate, but its bytes are suppressed.
//
// # Codecs
//
// Each resource renders through one [Codec], fixed at registration. The codec
// decodes request bodies for body-bearing verbs before the handler runs (a
// malformed body is a 400 and the handler never sees it), encodes [Obj]
// results, and renders error pages. [JSONCodec] is the default; [XMLCodec]
// is available for XML endpoints. [Classifier] and [BodyDecoder] values widen
// a resource beyond its codec, for plain-text responses and form-encoded
// posts.
//
// # Results
//
// Handlers return a [Result] naming the outcome instead of writing bytes:
//
//   - [Obj] for a structured value the codec encodes
//   - [Raw] and [Text] for verbatim bytes that bypass the codec
//   - [WithStatus] to override the 200 status of a success
//   - [NewError] and [NewErrorf] for an error page with a proper status code
//   - [Delegate] to hand the request to another resource
//   - [Promise] for results that are not ready yet
//
// Returning nil renders the codec's empty value with a 200.
//
// # Deferred Results and Cancellation
//
// A handler that cannot answer synchronously returns a [Promise] and settles
// it from another goroutine, or uses [Go] to run a function that produces the
// result. The renderer awaits settlement under the request context: when the
// client disconnects first, the cycle ends without writing anything and a
// late settlement is a harmless no-op.
//
// # Error Pages
//
// Errors become structured error pages in the resource's codec, carrying the
// numeric code and a client-safe message. Detail strings (including panic
// traces from recovered handler panics) stay out of responses unless
// [ExposeErrorDetail] is set, and are logged instead.
//
// # Delegation
//
// A resource can answer with [Delegate] to re-dispatch the request on another
// resource, typically after routing on the remaining path. The delegated
// resource goes through the full cycle again with its own options layered on
// the parent's. Delegation depth is capped, a cycle of delegating resources
// renders a 500 instead of recursing forever.
//
// # Buffered Response Writer
//
// The [ResponseWriter] interface extends http.ResponseWriter with buffering.
// All writes are held in memory until the implicit flush at the end of the
// request cycle. Key methods:
//
//   - [ResponseWriter.Reset] clears the buffer and headers for a fresh response
//   - [ResponseWriter.FlushBuffer] writes buffered content to the underlying writer
//   - [ResponseWriter.Free] returns the buffer to a pool (called automatically by the mux)
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns. The [Middleware]
// type operates on [BareHandler], which carries the context inside the
// request:
//
//	func loggingMiddleware(next rhttp.BareHandler) rhttp.BareHandler {
//	    return rhttp.BareHandlerFunc(func(w rhttp.ResponseWriter, r *http.Request) error {
//	        start := time.Now()
//	        err := next.ServeBareRHTTP(w, r)
//	        log.Printf("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
//	        return err
//	    })
//	}
//
//	mux := rhttp.NewServeMux()
//	mux.Use(loggingMiddleware)
//
// Middleware can inspect and transform errors, modify the request context, or
// reset and replace responses entirely.
//
// # Named Routes and URL Reversing
//
// Routes can be named for URL generation, avoiding hardcoded paths:
//
//	mux.HandleFunc("GET /users/{id}", getUser, "get-user")
//
//	// Generate URLs by name
//	url, err := mux.Reverse("get-user", "123")  // returns "/users/123"
//
// The [Reverser] component parses standard library route patterns and
// substitutes path parameters in order.
//
// # ServeMux
//
// [ServeMux] combines all components into a complete HTTP multiplexer that
// implements http.Handler:
//
//   - [ServeMux.Resource] registers a resource on a pattern
//   - [ServeMux.MountResource] serves a resource for a whole subtree
//   - [ServeMux.Use] registers middleware (must be called before Handle)
//   - [ServeMux.Handle] and [ServeMux.HandleFunc] register plain handlers
//   - [ServeMux.Reverse] generates URLs for named routes
//
// # Standard library handlers and error ownership
//
// Handlers registered through [ServeMux.HandleStd] and [ServeMux.MountStd]
// write to the buffered response but cannot return errors; whatever they
// write is flushed as-is. Error-returning handlers own error handling: an
// error escaping one resets the buffer and renders a plain error page, so the
// client never sees partial content.
//
// # Converting to Standard Library
//
// rhttp handlers can be converted to standard http.Handlers for use with any
// router or server:
//
//	handler := rhttp.Rest(myResource)
//	stdHandler := rhttp.ToStd(rhttp.ToBare(handler), bufferLimit, logger)
//
// The conversion chain is:
//
//	Resource → Handler → BareHandler → http.Handler
//
// [Rest] builds the renderer, [ToBare] moves the context into the request,
// [ToStd] wraps with buffering and error handling.
package rhttp
