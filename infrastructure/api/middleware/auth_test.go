package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestWriteProtect(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		method string
		key    string
		want   int
	}{
		{"GET passes without key", []string{"secret"}, http.MethodGet, "", http.StatusOK},
		{"HEAD passes without key", []string{"secret"}, http.MethodHead, "", http.StatusOK},
		{"OPTIONS passes without key", []string{"secret"}, http.MethodOptions, "", http.StatusOK},
		{"POST needs key", []string{"secret"}, http.MethodPost, "", http.StatusUnauthorized},
		{"DELETE needs key", []string{"secret"}, http.MethodDelete, "", http.StatusUnauthorized},
		{"PUT with valid key", []string{"secret"}, http.MethodPut, "secret", http.StatusOK},
		{"DELETE with second key", []string{"secret", "other"}, http.MethodDelete, "other", http.StatusOK},
		{"PATCH with wrong key", []string{"secret"}, http.MethodPatch, "nope", http.StatusUnauthorized},
		{"disabled passes all", nil, http.MethodDelete, "", http.StatusOK},
		{"blank keys disable", []string{""}, http.MethodPost, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := WriteProtect(NewAuthConfigWithKeys(tt.keys))(okHandler())

			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestWriteProtect_UnauthorizedBody(t *testing.T) {
	handler := WriteProtectAuth([]string{"secret"})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/vnd.api+json", w.Header().Get("Content-Type"))

	var doc JSONAPIErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "401", doc.Errors[0].Status)
	assert.Contains(t, doc.Errors[0].Detail, APIKeyHeader)
}
