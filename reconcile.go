package rhttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
)

// maxDelegationDepth caps how many times resources may delegate to other
// resources within one request cycle. The IETF suggests an HTTP redirect
// limit of 5 and delegation is a similar concept.
const maxDelegationDepth = 5

// Renderer drives one resource through the request cycle: it resolves the
// verb handler, decodes the request body where the verb calls for one,
// invokes the handler, awaits a deferred result and writes exactly one
// terminal response: a success body, an error page, or the terminal write of
// a delegated sub-resource.
//
// HEAD requests resolve through the GET handler when the resource has no
// explicit HEAD handler; the body is fully computed and Content-Length
// reflects it, but no body bytes are written.
type Renderer struct {
	res          Resource
	codec        Codec
	classifiers  []Classifier
	bodyDecoders []BodyDecoder
	logs         Logger
	exposeDetail bool
	maxBody      int64
}

// Option configures a renderer.
type Option func(*Renderer)

// WithCodec sets the content type of the resource. It defaults to
// [JSONCodec] and is fixed for the lifetime of the renderer: content is not
// negotiated per request.
func WithCodec(c Codec) Option {
	return func(rr *Renderer) { rr.codec = c }
}

// WithClassifier appends classifiers that widen which payloads the resource
// may return, see [Classifier].
func WithClassifier(cls ...Classifier) Option {
	return func(rr *Renderer) { rr.classifiers = append(rr.classifiers, cls...) }
}

// WithBodyDecoder appends body decoders that widen which request bodies the
// resource accepts, see [BodyDecoder].
func WithBodyDecoder(decs ...BodyDecoder) Option {
	return func(rr *Renderer) { rr.bodyDecoders = append(rr.bodyDecoders, decs...) }
}

// WithLogger sets the logger for error pages and render defects.
func WithLogger(logs Logger) Option {
	return func(rr *Renderer) { rr.logs = logs }
}

// ExposeErrorDetail makes error pages include the detail string of rendered
// errors. Off by default: detail may carry internals such as panic traces.
func ExposeErrorDetail() Option {
	return func(rr *Renderer) { rr.exposeDetail = true }
}

// WithMaxBody limits how many request body bytes are read. Zero or negative
// means no limit.
func WithMaxBody(n int64) Option {
	return func(rr *Renderer) { rr.maxBody = n }
}

// NewRenderer inits a renderer for the given resource.
func NewRenderer(res Resource, opts ...Option) *Renderer {
	rr := &Renderer{
		res:   res,
		codec: JSONCodec{},
		logs:  NewStdLogger(log.Default()),
	}
	for _, opt := range opts {
		opt(rr)
	}

	return rr
}

// Rest adapts a resource into a [Handler] so it can be registered on a mux or
// wrapped in middleware like any other handler.
func Rest(res Resource, opts ...Option) Handler {
	rr := NewRenderer(res, opts...)

	return HandlerFunc(rr.Render)
}

// cycleKey carries the per-request cycle state through delegation.
type cycleKey struct{}

// cycle tracks the terminal-write latch and delegation depth of one request.
// Each cycle exclusively owns its request and response writer; concurrent
// cycles never share state.
type cycle struct {
	depth    int
	finished bool
}

// Render runs the request cycle against the renderer's resource. It returns
// nil in every recovered situation: errors become rendered error pages, and
// only defects of the transport boundary itself (such as a response buffer
// overflow) surface as errors.
func (rr *Renderer) Render(ctx context.Context, w ResponseWriter, r *http.Request) error {
	cyc, ok := ctx.Value(cycleKey{}).(*cycle)
	if !ok {
		cyc = &cycle{}
		ctx = context.WithValue(ctx, cycleKey{}, cyc)
	}

	// re-entering a finished cycle is a defect in the caller, never write twice
	if cyc.finished {
		rr.logs.LogUnhandledServeError(fmt.Errorf(
			"render cycle for %s %s already finished", r.Method, r.URL.Path))

		return nil
	}

	inv, pageErr := resolve(rr.res, r.Method)
	if pageErr != nil {
		if allow := allowHeader(rr.res); allow != "" {
			w.Header().Set("Allow", allow)
		}

		return rr.writeError(cyc, w, inv.headOnly, pageErr)
	}

	var body any
	if inv.readBody {
		data, readErr := rr.readBody(r)
		if readErr != nil {
			return rr.writeError(cyc, w, inv.headOnly, readErr)
		}

		decoded, err := rr.decodeBody(r, data)
		if err != nil {
			return rr.writeError(cyc, w, inv.headOnly, NewErrorf(
				CodeBadRequest, "malformed request body").WithDetail("%v", err))
		}

		body = decoded
	}

	return rr.reconcile(ctx, cyc, w, r, inv, rr.invoke(ctx, inv.handler, r, body))
}

// reconcile classifies the handler's result and drives the response to its
// terminal state.
func (rr *Renderer) reconcile(
	ctx context.Context, cyc *cycle, w ResponseWriter, r *http.Request, inv invocation, result Result,
) error {
	classified := false
	statusOverride := 0

	for {
		if result == nil {
			result = objResult{v: rr.codec.Empty()}
		}

		switch v := result.(type) {
		case *Promise:
			settled, err := v.Await(ctx)
			if err != nil {
				if ctx.Err() != nil {
					// the request was aborted while suspended: release the
					// promise and leave, nothing may be written anymore
					cyc.finished = true
					return nil
				}

				if pageErr, ok := asError(err); ok {
					return rr.writeError(cyc, w, inv.headOnly, pageErr)
				}

				return rr.writeError(cyc, w, inv.headOnly, NewErrorf(
					CodeInternalServerError, "deferred handler failed").WithDetail("%v", err))
			}

			result = settled

		case *Error:
			return rr.writeError(cyc, w, inv.headOnly, v)

		case statusResult:
			statusOverride = v.code
			result = v.inner

		case delegateResult:
			if cyc.depth >= maxDelegationDepth {
				return rr.writeError(cyc, w, inv.headOnly, NewErrorf(
					CodeInternalServerError, "resource delegation limit exceeded").
					WithDetail("depth %d at %s", cyc.depth, r.URL.Path))
			}

			cyc.depth++

			return rr.child(v.res, v.opts).Render(ctx, w, r)

		case rawResult:
			return rr.writeSuccess(cyc, w, inv.headOnly, statusOverride, v.p, v.contentType)

		case objResult:
			if !classified {
				classified = true

				if widened, ok := rr.classify(v.v); ok {
					result = widened
					continue
				}
			}

			p, err := rr.codec.Encode(v.v)
			if err != nil {
				return rr.writeError(cyc, w, inv.headOnly, NewErrorf(
					CodeInternalServerError, "resource returned an unencodable response").
					WithDetail("%v", err))
			}

			return rr.writeSuccess(cyc, w, inv.headOnly, statusOverride, p, "")

		default:
			return rr.writeError(cyc, w, inv.headOnly, NewErrorf(
				CodeInternalServerError, "resource returned an unsupported result").
				WithDetail("unsupported result type %T", result))
		}

		if result == nil {
			result = objResult{v: rr.codec.Empty()}
		}
	}
}

// invoke calls the handler, converting a panic into a 500 error page result
// so one failing resource never takes down the process.
func (rr *Renderer) invoke(
	ctx context.Context, handler ResourceHandler, r *http.Request, body any,
) (out Result) {
	defer func() {
		if rec := recover(); rec != nil {
			out = NewErrorf(CodeInternalServerError, "unhandled error in resource handler").
				WithDetail("recovered: %v\n%s", rec, debug.Stack())
		}
	}()

	return handler(ctx, r, body)
}

func (rr *Renderer) readBody(r *http.Request) ([]byte, *Error) {
	reader := io.Reader(r.Body)
	if rr.maxBody > 0 {
		reader = http.MaxBytesReader(nil, r.Body, rr.maxBody)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, NewErrorf(CodeRequestEntityTooLarge,
				"request body exceeds %d bytes", rr.maxBody)
		}

		return nil, NewErrorf(CodeBadRequest, "failed to read request body").
			WithDetail("%v", err)
	}

	return data, nil
}

func (rr *Renderer) decodeBody(r *http.Request, data []byte) (any, error) {
	for _, dec := range rr.bodyDecoders {
		v, claimed, err := dec.DecodeBody(r, data)
		if claimed {
			return v, err
		}
	}

	return rr.codec.Decode(data)
}

func (rr *Renderer) classify(v any) (Result, bool) {
	for _, cl := range rr.classifiers {
		if res, ok := cl.Classify(v); ok {
			return res, true
		}
	}

	return nil, false
}

func (rr *Renderer) writeSuccess(
	cyc *cycle, w ResponseWriter, headOnly bool, status int, p []byte, contentType string,
) error {
	if contentType == "" {
		contentType = rr.codec.ContentType()
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(p)))

	if status > 0 {
		w.WriteHeader(status)
	}

	if !headOnly {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("failed to write response body: %w", err)
		}
	}

	cyc.finished = true

	return nil
}

func (rr *Renderer) writeError(cyc *cycle, w ResponseWriter, headOnly bool, e *Error) error {
	if e.ShouldLog() {
		rr.logs.LogErrorPage(e)
	}

	p := rr.codec.EncodeError(e, rr.exposeDetail)

	w.Header().Set("Content-Type", rr.codec.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(p)))
	w.WriteHeader(int(e.Code()))

	if !headOnly {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("failed to write error page: %w", err)
		}
	}

	cyc.finished = true

	return nil
}

// child derives the renderer for a delegated sub-resource: it inherits the
// parent's configuration with the delegation's own options applied on top.
func (rr *Renderer) child(res Resource, opts []Option) *Renderer {
	sub := *rr
	sub.res = res
	sub.classifiers = append([]Classifier(nil), rr.classifiers...)
	sub.bodyDecoders = append([]BodyDecoder(nil), rr.bodyDecoders...)

	for _, opt := range opts {
		opt(&sub)
	}

	return &sub
}
