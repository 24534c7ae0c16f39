package rweb

import (
	"net/http"

	"github.com/advdv/rhttp"
	"go.uber.org/zap"
)

// DefaultMaxResponseBytes caps buffered responses at 8 MiB minus 1 KiB of
// headroom for headers and framing.
const DefaultMaxResponseBytes = 8*1024*1024 - 1024

// Mux is an alias for rhttp.ServeMux.
type Mux = rhttp.ServeMux

// NewMux creates a new Mux with sensible service defaults.
func NewMux(logs *zap.Logger) *Mux {
	return rhttp.NewServeMuxWith(
		DefaultMaxResponseBytes,
		newZapRHTTPLogger(logs),
		http.NewServeMux(),
		rhttp.NewReverser(),
	)
}
