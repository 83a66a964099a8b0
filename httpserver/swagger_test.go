package httpserver_test

import (
	_ "moviehub/docs"
	"moviehub/httpserver"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwaggerDoc(t *testing.T) {
	server := httpserver.Default(testConfig())

	rec := makeRequest(server, http.MethodGet, "/swagger/doc.json", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/api/movies"`)
}
