package httpserver_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"moviehub/httpserver"
	"moviehub/pkg/config"
	"moviehub/pkg/jwt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken() (string, error) {
	return signToken(testJWTSecret, time.Now().Add(1*time.Hour))
}

func signToken(secret string, expires time.Time) (string, error) {
	provider, err := jwt.NewJWTProvider(secret, time.Until(expires))
	if err != nil {
		return "", err
	}
	return provider.GenerateAdminToken("admin")
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
