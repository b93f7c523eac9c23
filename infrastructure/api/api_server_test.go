package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/rangemap"
	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/api"
	"github.com/helixml/rangemap/internal/log"
	"github.com/helixml/rangemap/internal/testalmanac"
)

func newTestClient(t *testing.T) *rangemap.Client {
	t.Helper()
	client, err := rangemap.New(rangemap.WithSQLite(":memory:"), rangemap.WithLogger(log.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func serve(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAPIServer_WriteProtection(t *testing.T) {
	client := newTestClient(t)
	_, err := client.Solver.Solve(context.Background(), testalmanac.Example(t), almanac.ModePoint)
	require.NoError(t, err)

	h := api.NewAPIServer(client, api.WithAPIKeys("test-secret-key")).Handler()
	solveBody, err := json.Marshal(map[string]string{"almanac": testalmanac.Text})
	require.NoError(t, err)
	jsonHeader := map[string]string{"Content-Type": "application/json"}

	t.Run("solve is open", func(t *testing.T) {
		w := serve(h, http.MethodPost, "/api/v1/solve", string(solveBody), jsonHeader)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("map is open", func(t *testing.T) {
		w := serve(h, http.MethodPost, "/api/v1/map?value=13", testalmanac.Text, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("listing is open", func(t *testing.T) {
		w := serve(h, http.MethodGet, "/api/v1/solutions", "", nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("delete without key is rejected", func(t *testing.T) {
		w := serve(h, http.MethodDelete, "/api/v1/solutions/1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("delete with key passes", func(t *testing.T) {
		w := serve(h, http.MethodDelete, "/api/v1/solutions/1", "", map[string]string{"X-API-KEY": "test-secret-key"})
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})
}

func TestAPIServer_HealthAndRoot(t *testing.T) {
	h := api.NewAPIServer(newTestClient(t), api.WithVersion("1.2.3")).Handler()

	for _, path := range []string{"/health", "/healthz"} {
		w := serve(h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	}

	w := serve(h, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var root struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Persistence bool   `json:"persistence"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, "rangemap", root.Name)
	assert.Equal(t, "1.2.3", root.Version)
	assert.True(t, root.Persistence)
}

func TestAPIServer_CORS(t *testing.T) {
	h := api.NewAPIServer(newTestClient(t), api.WithCORSAllowedOrigins("https://example.com")).Handler()

	w := serve(h, http.MethodOptions, "/api/v1/solve", "", map[string]string{
		"Origin":                        "https://example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(h, http.MethodGet, "/health", "", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIServer_MCPEndpoint(t *testing.T) {
	h := api.NewAPIServer(newTestClient(t)).Handler()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	w := serve(h, http.MethodPost, "/mcp", body, map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json, text/event-stream",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"rangemap"`)
}

func TestAPIServer_HandlerIsIdempotent(t *testing.T) {
	srv := api.NewAPIServer(newTestClient(t))
	first := srv.Handler()
	second := srv.Handler()

	assert.Equal(t, http.StatusOK, serve(first, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(second, http.MethodGet, "/health", "", nil).Code)
}
