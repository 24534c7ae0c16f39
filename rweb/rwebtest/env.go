package rwebtest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [rweb.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [rweb.BaseEnvironment] env vars to sensible test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - SERVICE_NAME: "test"
//   - READINESS_CHECK_PATH: "/healthz"
//   - LOG_LEVEL: "error"
//   - OTEL_EXPORTER: "off"
//   - REQUEST_TIMEOUT: "30s"
//
// Use the returned [Env] to override individual values:
//
//	rwebtest.SetBaseEnv(t, 18085).ServiceName("itemsvc").RequestTimeout("5s")
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("SERVICE_NAME", "test")
	t.Setenv("READINESS_CHECK_PATH", "/healthz")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OTEL_EXPORTER", "off")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	return &Env{t: t}
}

// ServiceName overrides SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("SERVICE_NAME", name)
	return e
}

// ReadinessCheckPath overrides READINESS_CHECK_PATH.
func (e *Env) ReadinessCheckPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("READINESS_CHECK_PATH", path)
	return e
}

// LogLevel overrides LOG_LEVEL.
func (e *Env) LogLevel(level string) *Env {
	e.t.Helper()
	e.t.Setenv("LOG_LEVEL", level)
	return e
}

// OtelExporter overrides OTEL_EXPORTER.
func (e *Env) OtelExporter(exporter string) *Env {
	e.t.Helper()
	e.t.Setenv("OTEL_EXPORTER", exporter)
	return e
}

// RequestTimeout overrides REQUEST_TIMEOUT.
func (e *Env) RequestTimeout(d string) *Env {
	e.t.Helper()
	e.t.Setenv("REQUEST_TIMEOUT", d)
	return e
}

// SecretsFile overrides SECRETS_FILE.
func (e *Env) SecretsFile(path string) *Env {
	e.t.Helper()
	e.t.Setenv("SECRETS_FILE", path)
	return e
}
