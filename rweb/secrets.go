package rweb

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// SecretReader abstracts secret retrieval for testability and flexibility.
type SecretReader interface {
	GetSecretString(ctx context.Context, secretID string) (string, error)
}

// FileSecretReader implements SecretReader over a JSON file: each top-level
// key is a secret id and its value the secret string. The file is re-read on
// every call so rotated secrets are picked up without a restart.
type FileSecretReader struct {
	path string
}

// NewFileSecretReader creates a FileSecretReader for the given path.
func NewFileSecretReader(path string) *FileSecretReader {
	return &FileSecretReader{path: path}
}

// GetSecretString retrieves a secret value from the secrets file.
func (r *FileSecretReader) GetSecretString(_ context.Context, secretID string) (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read secrets file %q", r.path)
	}

	result := gjson.GetBytes(data, secretID)
	if !result.Exists() {
		return "", errors.Errorf("secret %q not found in %q", secretID, r.path)
	}

	return result.String(), nil
}

// EnvSecretReader implements SecretReader over environment variables: the
// secret id "my-api-key" reads SECRET_MY_API_KEY.
type EnvSecretReader struct{}

// NewEnvSecretReader creates an EnvSecretReader.
func NewEnvSecretReader() *EnvSecretReader {
	return &EnvSecretReader{}
}

// GetSecretString retrieves a secret value from the environment.
func (r *EnvSecretReader) GetSecretString(_ context.Context, secretID string) (string, error) {
	name := "SECRET_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(secretID))

	val, ok := os.LookupEnv(name)
	if !ok {
		return "", errors.Errorf("secret %q not found: %s is not set", secretID, name)
	}

	return val, nil
}

// secretFromReader retrieves a secret value, optionally extracting a JSON path.
// If jsonPath is provided, the secret is parsed as JSON and the path is extracted.
// If jsonPath is empty, the raw secret string is returned.
func secretFromReader(ctx context.Context, reader SecretReader, secretID string, jsonPath ...string) (string, error) {
	if len(jsonPath) > 1 {
		return "", errors.New("rweb: Secret accepts at most one jsonPath argument")
	}

	secret, err := reader.GetSecretString(ctx, secretID)
	if err != nil {
		return "", err
	}

	if len(jsonPath) == 0 || jsonPath[0] == "" {
		return secret, nil
	}

	path := jsonPath[0]
	result := gjson.Get(secret, path)
	if !result.Exists() {
		return "", errors.Errorf("secret path %q not found in secret %q", path, secretID)
	}

	return result.String(), nil
}
