package rweb_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// readAll drains and returns the response body.
func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(data)
}
