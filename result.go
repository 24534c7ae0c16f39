package rhttp

// Result is the value produced by a resource handler. It is a closed set of variants:
//
//   - [Obj]: a structured value encoded by the resource's codec
//   - [Raw] and [Text]: already-serialized bytes written verbatim
//   - [*Error]: an error page rendered through the codec
//   - [Delegate]: another resource that takes over the render cycle
//   - [*Promise]: a deferred computation resolving to one of the above
//
// A nil Result is valid and renders as the codec's empty value with status 200.
// A Result is created by exactly one handler invocation and consumed by exactly
// one render cycle; it has no identity beyond that.
type Result interface{ isResult() }

type objResult struct{ v any }

// Obj returns a Result holding a structured value. The renderer encodes it with
// the resource's codec; values outside the codec's supported shapes render as a
// 500 error page unless a classifier widens them.
func Obj(v any) Result { return objResult{v: v} }

type rawResult struct {
	p           []byte
	contentType string
}

// Raw returns a Result whose bytes are written verbatim, bypassing the codec.
// The response keeps the codec's content type.
func Raw(p []byte) Result { return rawResult{p: p} }

// Text returns a Result whose string is written verbatim with a text/plain
// content type.
func Text(s string) Result {
	return rawResult{p: []byte(s), contentType: "text/plain; charset=utf-8"}
}

type statusResult struct {
	code  int
	inner Result
}

// WithStatus wraps a success Result with an explicit response status, overriding
// the default 200. It has no effect on error pages, which always use the error's
// own code.
func WithStatus(code int, res Result) Result { return statusResult{code: code, inner: res} }

type delegateResult struct {
	res  Resource
	opts []Option
}

// Delegate returns a Result that hands the request over to another resource: the
// sub-resource's own full render cycle runs against the same request and performs
// the terminal write. Options default to those of the delegating renderer and can
// be overridden, for example to render the sub-resource with a different codec.
func Delegate(res Resource, opts ...Option) Result { return delegateResult{res: res, opts: opts} }

func (objResult) isResult()      {}
func (rawResult) isResult()      {}
func (statusResult) isResult()   {}
func (delegateResult) isResult() {}
