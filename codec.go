package rhttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Codec turns request bodies into values and handler values into response
// bodies for one content type. Implementations are stateless; the same codec
// value is shared by every request cycle of a resource.
type Codec interface {
	// ContentType is the value of the Content-Type response header.
	ContentType() string

	// Empty is the value an empty request body decodes to. It is also what a
	// nil handler result encodes as.
	Empty() any

	// Decode parses raw body bytes. A failure renders as a 400 error page and
	// the handler is never invoked. Empty input returns Empty(), never an error.
	Decode(data []byte) (any, error)

	// Encode serializes a structured handler value. It must reject values
	// outside the codec's supported shapes; such a failure is a programming
	// error in the resource and renders as a 500 error page.
	Encode(v any) ([]byte, error)

	// EncodeError renders an error page body. It must be total: every *Error
	// has a representation.
	EncodeError(e *Error, withDetail bool) []byte
}

// JSONCodec reads and writes application/json. Structured values are maps,
// slices and arrays; anything else is rejected by Encode so that a resource
// returning the wrong shape fails loudly instead of leaking internals.
type JSONCodec struct {
	// Indent enables pretty-printed output.
	Indent bool
}

func (JSONCodec) ContentType() string { return "application/json; charset=utf-8" }

func (JSONCodec) Empty() any { return map[string]any{} }

func (c JSONCodec) Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return c.Empty(), nil
	}

	// quick rejection before a full parse, the body must hold a document
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("invalid json: first character %q is not '{' or '['", trimmed[0])
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	return v, nil
}

func (c JSONCodec) Encode(v any) ([]byte, error) {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("json codec cannot encode %T: not a map, slice or array", v)
	}

	p, err := c.marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec failed to encode %T: %w", v, err)
	}

	return p, nil
}

func (c JSONCodec) EncodeError(e *Error, withDetail bool) []byte {
	page := map[string]any{
		"code":   int(e.Code()),
		"error":  e.Message(),
		"detail": nil,
	}
	if withDetail && e.Detail() != "" {
		page["detail"] = e.Detail()
	}

	p, err := c.marshal(page)
	if err != nil {
		// all page values are plain strings and ints, this cannot fail
		panic("rhttp: failed to encode error page: " + err.Error())
	}

	return p
}

func (c JSONCodec) marshal(v any) ([]byte, error) {
	if c.Indent {
		return json.MarshalIndent(v, "", "\t")
	}

	return json.Marshal(v)
}
