package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/rangemap"
	apimiddleware "github.com/helixml/rangemap/infrastructure/api/middleware"
	v1 "github.com/helixml/rangemap/infrastructure/api/v1"
	mcpinternal "github.com/helixml/rangemap/internal/mcp"
)

// requestTimeout bounds every /api/v1 request.
const requestTimeout = 2 * time.Minute

// APIServerOption configures an APIServer.
type APIServerOption func(*APIServer)

// WithAPIKeys protects mutating endpoints with the given keys.
func WithAPIKeys(keys ...string) APIServerOption {
	return func(a *APIServer) { a.apiKeys = keys }
}

// WithCORSAllowedOrigins enables CORS for the given origins.
func WithCORSAllowedOrigins(origins ...string) APIServerOption {
	return func(a *APIServer) { a.corsOrigins = origins }
}

// WithVersion sets the version reported by / and the MCP server.
func WithVersion(version string) APIServerOption {
	return func(a *APIServer) { a.version = version }
}

// APIServer provides the HTTP API backed by a rangemap Client.
type APIServer struct {
	client      *rangemap.Client
	apiKeys     []string
	corsOrigins []string
	version     string
	server      *Server
	router      chi.Router
	mounted     bool
	logger      *slog.Logger
}

// NewAPIServer creates an APIServer. Mutating endpoints under /api/v1 need a
// key when WithAPIKeys is given; reads, solving, mapping and MCP stay open.
func NewAPIServer(client *rangemap.Client, opts ...APIServerOption) *APIServer {
	a := &APIServer{
		client:  client,
		version: "dev",
		logger:  client.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns the chi router. Add middleware with Use before calling
// MountRoutes.
func (a *APIServer) Router() chi.Router {
	if a.router == nil {
		a.router = chi.NewRouter()
	}
	return a.router
}

// MountRoutes registers every route on the router. It is idempotent.
func (a *APIServer) MountRoutes() {
	if a.mounted {
		return
	}
	a.mounted = true
	a.mountRoutes(a.Router())
}

func (a *APIServer) mountRoutes(router chi.Router) {
	if len(a.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", apimiddleware.APIKeyHeader, apimiddleware.CorrelationIDHeader},
			ExposedHeaders:   []string{apimiddleware.CorrelationIDHeader, "Mcp-Session-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	solveRouter := v1.NewSolveRouter(a.client)
	solutionsRouter := v1.NewSolutionsRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))

		// Solving and mapping are computations, not writes.
		r.Mount("/solve", solveRouter.Routes())
		r.Mount("/map", solveRouter.MapRoutes())

		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.WriteProtectAuth(a.apiKeys))
			r.Mount("/solutions", solutionsRouter.Routes())
		})
	})

	router.Get("/health", healthHandler)
	router.Get("/healthz", healthHandler)
	router.Get("/", a.rootHandler)

	// No timeout middleware: MCP streams and tracks sessions in headers.
	mcpSrv := mcpinternal.NewServer(a.client.Solver, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

// ListenAndServe serves on addr until Shutdown.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, a.logger)
	a.server = srv
	srv.Router().Mount("/", a.Handler())
	return srv.Start()
}

// Shutdown gracefully stops ListenAndServe.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router with every route mounted.
func (a *APIServer) Handler() http.Handler {
	a.MountRoutes()
	return a.router
}

func (a *APIServer) rootHandler(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]any{
		"name":        "rangemap",
		"version":     a.version,
		"persistence": a.client.Persistent(),
		"endpoints":   []string{"/api/v1/solve", "/api/v1/map", "/api/v1/solutions", "/mcp"},
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

