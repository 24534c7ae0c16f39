package rweb

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	readinessCheckPath() string
	logLevel() zapcore.Level
	otelExporter() string
	requestTimeout() time.Duration
	h2cEnabled() bool
	secretsFile() string
}

// BaseEnvironment contains the required service environment variables.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Port               int           `env:"PORT,required"`
	ServiceName        string        `env:"SERVICE_NAME,required"`
	ReadinessCheckPath string        `env:"READINESS_CHECK_PATH" envDefault:"/healthz"`
	LogLevel           zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
	OtelExporter       string        `env:"OTEL_EXPORTER" envDefault:"stdout"`

	// RequestTimeout bounds every request: it derives the http.Server timeouts
	// and the per-request context deadline.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// H2C serves cleartext HTTP/2, for deployments behind a reverse proxy
	// that speaks h2c to upstreams.
	H2C bool `env:"H2C" envDefault:"false"`

	// SecretsFile points at a JSON file with secret values. When set the app
	// reads secrets from it; otherwise secrets come from SECRET_* env vars.
	SecretsFile string `env:"SECRETS_FILE"`
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) readinessCheckPath() string {
	return e.ReadinessCheckPath
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

func (e BaseEnvironment) requestTimeout() time.Duration {
	return e.RequestTimeout
}

func (e BaseEnvironment) h2cEnabled() bool {
	return e.H2C
}

func (e BaseEnvironment) secretsFile() string {
	return e.SecretsFile
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}
		return e, nil
	}
}
