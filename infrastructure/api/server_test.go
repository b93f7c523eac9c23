package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/rangemap/internal/log"
)

func TestNewServer(t *testing.T) {
	server := NewServer(":8080", log.Discard())

	assert.Equal(t, ":8080", server.Addr())
	assert.NotNil(t, server.Router())
}

func TestServer_NotFound(t *testing.T) {
	server := NewServer(":0", log.Discard())

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RecoversPanics(t *testing.T) {
	server := NewServer(":0", log.Discard())
	server.Router().Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	server := NewServer(":0", log.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, server.Shutdown(ctx))
}

func TestServer_ServeAndShutdown(t *testing.T) {
	server := NewServer("127.0.0.1:0", log.Discard())
	server.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- server.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ln.Addr().String(), server.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
	assert.NoError(t, <-done)
}
