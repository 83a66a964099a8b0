package httpserver_test

import (
	"moviehub/httpserver"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	server := httpserver.Default(testConfig())

	rec := makeRequest(server, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
