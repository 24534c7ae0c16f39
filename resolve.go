package rhttp

import (
	"net/http"
	"strings"
)

// bodyBearing classifies which verbs carry request-body semantics. The table
// is fixed: resources cannot opt a verb in or out.
func bodyBearing(verb string) bool {
	switch verb {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// invocation is a handler bound to one request's verb.
type invocation struct {
	handler ResourceHandler

	// readBody is set when the request body must be read and decoded before
	// the handler runs.
	readBody bool

	// headOnly is set for HEAD requests: the body is computed but its bytes
	// are suppressed.
	headOnly bool
}

// resolve picks the handler for the request verb: the exact verb handler if
// present, else the catch-all, else a 405 error page. HEAD without an
// explicit HEAD handler follows GET resolution.
func resolve(res Resource, verb string) (invocation, *Error) {
	inv := invocation{
		readBody: bodyBearing(verb),
		headOnly: verb == http.MethodHead,
	}

	if h, ok := res.HandlerFor(verb); ok {
		inv.handler = h
		return inv, nil
	}

	if verb == http.MethodHead {
		if h, ok := res.HandlerFor(http.MethodGet); ok {
			inv.handler = h
			return inv, nil
		}
	}

	if h, ok := res.CatchAll(); ok {
		inv.handler = h
		return inv, nil
	}

	return inv, NewErrorf(CodeMethodNotAllowed, "method %s is not allowed", verb)
}

// allowHeader builds the Allow header value for a 405 response, or "" when
// the resource cannot enumerate its verbs.
func allowHeader(res Resource) string {
	lister, ok := res.(VerbLister)
	if !ok {
		return ""
	}

	verbs := lister.Verbs()
	if len(verbs) == 0 {
		return ""
	}

	allowed := make([]string, 0, len(verbs)+1)
	allowed = append(allowed, verbs...)

	// HEAD rides on GET resolution, so GET implies HEAD
	hasGet, hasHead := false, false
	for _, v := range verbs {
		hasGet = hasGet || v == http.MethodGet
		hasHead = hasHead || v == http.MethodHead
	}
	if hasGet && !hasHead {
		allowed = append(allowed, http.MethodHead)
	}

	return strings.Join(allowed, ", ")
}
