package rhttp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// ErrBufferFull is returned from writes that would grow the buffer past its
// configured limit. Nothing is written in that case, not even a prefix.
var ErrBufferFull = errors.New("rhttp: response buffer is full")

// bufPool recycles response buffers between request cycles.
var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// ResponseBuffer implements [ResponseWriter] over an underlying
// http.ResponseWriter. All writes are held in memory until a flush, so a
// response can be reset and completely rewritten up to the moment it is
// flushed, and exactly one terminal header-and-body write reaches the
// underlying connection.
type ResponseBuffer struct {
	resp http.ResponseWriter
	buf  *bytes.Buffer
	lim  int

	status        int
	wroteHeader   bool
	headerFlushed bool
	flushed       bool
}

// NewResponseWriter inits a buffered response writer on top of resp. A
// negative limit disables the write limit.
func NewResponseWriter(resp http.ResponseWriter, limit int) *ResponseBuffer {
	return newBufferResponse(resp, limit)
}

func newBufferResponse(resp http.ResponseWriter, limit int) *ResponseBuffer {
	buf, _ := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &ResponseBuffer{
		resp:   resp,
		buf:    buf,
		lim:    limit,
		status: http.StatusOK,
	}
}

// Header returns the header map sent on the first flush.
func (b *ResponseBuffer) Header() http.Header { return b.resp.Header() }

// Write appends p to the buffer. It fails with [ErrBufferFull] when the
// buffer would grow past its limit, writing nothing.
func (b *ResponseBuffer) Write(p []byte) (int, error) {
	if b.lim >= 0 && b.buf.Len()+len(p) > b.lim {
		return 0, ErrBufferFull
	}

	return b.buf.Write(p)
}

// WriteHeader buffers the status code. As with the standard library only the
// first call has effect, but nothing reaches the client until a flush.
func (b *ResponseBuffer) WriteHeader(statusCode int) {
	if b.wroteHeader {
		return
	}

	b.status = statusCode
	b.wroteHeader = true
}

// Reset clears the buffer, the header map and the status code so a fresh
// response can be formulated. It panics when the response was already
// explicitly flushed, since bytes have reached the client by then.
func (b *ResponseBuffer) Reset() {
	if b.flushed {
		panic("rhttp: response buffer already flushed")
	}

	hdr := b.resp.Header()
	for k := range hdr {
		delete(hdr, k)
	}

	b.buf.Reset()
	b.status = http.StatusOK
	b.wroteHeader = false
}

// Flush implements http.Flusher by ignoring the flush error.
func (b *ResponseBuffer) Flush() { _ = b.FlushError() }

// FlushError writes the status, headers and buffered bytes to the underlying
// writer. After an explicit flush the response can no longer be reset;
// further writes are streamed on the next flush.
func (b *ResponseBuffer) FlushError() error {
	b.flushed = true

	return b.flush()
}

// FlushBuffer performs the implicit flush at the end of a request cycle.
func (b *ResponseBuffer) FlushBuffer() error {
	return b.flush()
}

// Free returns the buffer to the pool. The response must not be used after.
func (b *ResponseBuffer) Free() {
	if b.buf == nil {
		return
	}

	bufPool.Put(b.buf)
	b.buf = nil
}

// Unwrap returns the underlying response writer, which allows the standard
// library's http.ResponseController to reach it.
func (b *ResponseBuffer) Unwrap() http.ResponseWriter { return b.resp }

func (b *ResponseBuffer) flush() error {
	if !b.headerFlushed {
		b.resp.WriteHeader(b.status)
		b.headerFlushed = true
	}

	if b.buf.Len() > 0 {
		if _, err := b.resp.Write(b.buf.Bytes()); err != nil {
			return fmt.Errorf("failed to flush response buffer: %w", err)
		}

		b.buf.Reset()
	}

	return nil
}
