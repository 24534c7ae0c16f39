package rhttp

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogUnhandledServeError(err error)
	LogImplicitFlushError(err error)
	LogErrorPage(e *Error)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogUnhandledServeError(err error) {
	l.Logger.Printf("rhttp: unhandled server error: %s", err)
}

func (l stdLogger) LogImplicitFlushError(err error) {
	l.Logger.Printf("rhttp: error while flushing implicitly: %s", err)
}

func (l stdLogger) LogErrorPage(e *Error) {
	if detail := e.Detail(); detail != "" {
		l.Logger.Printf("rhttp: rendered error page: %s: %s", e, detail)
		return
	}

	l.Logger.Printf("rhttp: rendered error page: %s", e)
}

func NewStdLogger(l *log.Logger) Logger {
	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogUnhandledServeError int64
	NumLogImplicitFlushError  int64
	NumLogErrorPage           int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogUnhandledServeError(err error) {
	atomic.AddInt64(&l.NumLogUnhandledServeError, 1)
	l.tb.Logf("rhttp: unhandled server error: %s", err)
}

func (l *TestLogger) LogImplicitFlushError(err error) {
	atomic.AddInt64(&l.NumLogImplicitFlushError, 1)
	l.tb.Logf("rhttp: error while flushing implicitly: %s", err)
}

func (l *TestLogger) LogErrorPage(e *Error) {
	atomic.AddInt64(&l.NumLogErrorPage, 1)
	l.tb.Logf("rhttp: rendered error page: %s", e)
}

var _ Logger = &TestLogger{}
