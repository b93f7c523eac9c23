package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/helixml/rangemap"
	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/solution"
	"github.com/helixml/rangemap/infrastructure/api"
	apimiddleware "github.com/helixml/rangemap/infrastructure/api/middleware"
	"github.com/helixml/rangemap/infrastructure/persistence"
	"github.com/helixml/rangemap/internal/database"
	"github.com/helixml/rangemap/internal/log"
)

const testAPIKey = "e2e-key"

// TestServer runs the full HTTP stack against a SQLite file.
type TestServer struct {
	t          *testing.T
	client     *rangemap.Client
	db         database.Database
	store      persistence.SolutionStore
	httpServer *httptest.Server
}

// NewTestServer creates a client on a temporary SQLite file, a second handle
// on the same file for seeding, and an httptest server with every route.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	ctx := context.Background()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "e2e.db")
	logger := log.Discard()

	client, err := rangemap.New(
		rangemap.WithSQLite(dbPath),
		rangemap.WithDataDir(tmpDir),
		rangemap.WithWorkerCount(4),
		rangemap.WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("create rangemap client: %v", err)
	}

	db, err := database.NewDatabase(ctx, "sqlite:///"+dbPath, logger)
	if err != nil {
		t.Fatalf("open seeding database: %v", err)
	}

	apiServer := api.NewAPIServer(client, api.WithAPIKeys(testAPIKey), api.WithVersion("e2e"))
	router := apiServer.Router()
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(logger))
	apiServer.MountRoutes()

	server := api.NewServer(":0", logger)
	server.Router().Mount("/", router)

	ts := &TestServer{
		t:          t,
		client:     client,
		db:         db,
		store:      persistence.NewSolutionStore(db),
		httpServer: httptest.NewServer(server.Router()),
	}
	t.Cleanup(ts.Close)
	return ts
}

// Close stops the server and releases both database handles.
func (ts *TestServer) Close() {
	ts.httpServer.Close()
	if err := ts.db.Close(); err != nil {
		ts.t.Errorf("close seeding database: %v", err)
	}
	if err := ts.client.Close(); err != nil {
		ts.t.Errorf("close client: %v", err)
	}
}

// SeedSolution stores an answer directly, bypassing the solver.
func (ts *TestServer) SeedSolution(a almanac.Almanac, mode almanac.Mode, lowest uint64) solution.Solution {
	ts.t.Helper()
	sol := solution.NewSolution(a.Checksum(), mode, lowest, len(a.Seeds()), a.Pipeline().Len(), time.Millisecond)
	saved, err := ts.store.Save(context.Background(), sol)
	if err != nil {
		ts.t.Fatalf("seed solution: %v", err)
	}
	return saved
}

// Do sends a request and returns the response with its body read.
func (ts *TestServer) Do(method, path, contentType string, body []byte, headers map[string]string) (*http.Response, []byte) {
	ts.t.Helper()

	req, err := http.NewRequest(method, ts.httpServer.URL+path, bytes.NewReader(body))
	if err != nil {
		ts.t.Fatalf("build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.httpServer.Client().Do(req)
	if err != nil {
		ts.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		ts.t.Fatalf("read body: %v", err)
	}
	return resp, data
}

// PostJSON marshals v and posts it.
func (ts *TestServer) PostJSON(path string, v any) (*http.Response, []byte) {
	ts.t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		ts.t.Fatalf("marshal: %v", err)
	}
	return ts.Do(http.MethodPost, path, "application/json", body, nil)
}

// Decode unmarshals data into T or fails the test.
func Decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %T from %s: %v", v, data, err)
	}
	return v
}
