package rhttp

import (
	"mime"
	"net/http"
	"net/url"
)

// Classifier widens which [Obj] payloads a renderer accepts beyond the
// codec's structured shapes. Classifiers run before the codec: the first one
// to claim a value decides its terminal Result. They are injected at renderer
// construction with [WithClassifier] and never change the render state
// machine itself.
type Classifier interface {
	// Classify maps a handler payload onto a terminal Result. The boolean
	// reports whether the classifier claims the value.
	Classify(v any) (Result, bool)
}

// ClassifierFunc adapts a function to the [Classifier] interface.
type ClassifierFunc func(v any) (Result, bool)

// Classify implements [Classifier].
func (f ClassifierFunc) Classify(v any) (Result, bool) { return f(v) }

// AllowText returns a classifier that accepts string and []byte payloads and
// writes them verbatim as text/plain. It lets a resource on a structured
// codec return plain text from some handlers.
func AllowText() Classifier {
	return ClassifierFunc(func(v any) (Result, bool) {
		switch s := v.(type) {
		case string:
			return Text(s), true
		case []byte:
			return rawResult{p: s, contentType: "text/plain; charset=utf-8"}, true
		default:
			return nil, false
		}
	})
}

// BodyDecoder widens how request bodies are decoded before the handler runs.
// Decoders run before the codec: the first one to claim a request decodes its
// body. Injected at renderer construction with [WithBodyDecoder].
type BodyDecoder interface {
	// DecodeBody decodes the raw body bytes of r. The boolean reports whether
	// this decoder claims the request; unclaimed requests fall through to the
	// next decoder and finally to the codec.
	DecodeBody(r *http.Request, data []byte) (any, bool, error)
}

// BodyDecoderFunc adapts a function to the [BodyDecoder] interface.
type BodyDecoderFunc func(r *http.Request, data []byte) (any, bool, error)

// DecodeBody implements [BodyDecoder].
func (f BodyDecoderFunc) DecodeBody(r *http.Request, data []byte) (any, bool, error) {
	return f(r, data)
}

// FormBody returns a body decoder that claims form-encoded posts and decodes
// them to a url.Values, so a resource on a structured codec can also accept
// html form submissions.
func FormBody() BodyDecoder {
	return BodyDecoderFunc(func(r *http.Request, data []byte) (any, bool, error) {
		mediatype, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediatype != "application/x-www-form-urlencoded" {
			return nil, false, nil
		}

		vals, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, true, err
		}

		return vals, true, nil
	})
}
