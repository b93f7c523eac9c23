package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/rangemap"
	"github.com/helixml/rangemap/domain/solution"
	"github.com/helixml/rangemap/infrastructure/api/middleware"
	"github.com/helixml/rangemap/infrastructure/api/v1/dto"
)

// maxListLimit caps the limit query parameter.
const maxListLimit = 500

// SolutionsRouter handles the stored solution endpoints.
type SolutionsRouter struct {
	client *rangemap.Client
	logger *slog.Logger
}

// NewSolutionsRouter creates a SolutionsRouter.
func NewSolutionsRouter(client *rangemap.Client) *SolutionsRouter {
	return &SolutionsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the router for /solutions.
func (r *SolutionsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{id}", r.Get)
	router.Delete("/{id}", r.Delete)

	return router
}

// List handles GET /api/v1/solutions?limit=N.
func (r *SolutionsRouter) List(w http.ResponseWriter, req *http.Request) {
	limit := 0
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			middleware.WriteError(w, req, fmt.Errorf("%w: limit must be a non-negative integer", middleware.ErrBadRequest), r.logger)
			return
		}
		limit = min(n, maxListLimit)
	}

	found, err := r.client.Solutions.List(req.Context(), limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.SolutionData, len(found))
	for i, s := range found {
		data[i] = solutionData(s)
	}
	middleware.WriteJSON(w, http.StatusOK, dto.SolutionJSONAPIListResponse{
		Data: data,
		Meta: dto.SolutionMeta{Count: len(data), Limit: limit},
	})
}

// Get handles GET /api/v1/solutions/{id}.
func (r *SolutionsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	sol, err := r.client.Solutions.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.SolutionJSONAPIResponse{Data: solutionData(sol)})
}

// Delete handles DELETE /api/v1/solutions/{id}.
func (r *SolutionsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Solutions.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(req *http.Request) (int64, error) {
	raw := chi.URLParam(req, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid solution id %q", middleware.ErrBadRequest, raw)
	}
	return id, nil
}

func solutionData(s solution.Solution) dto.SolutionData {
	return dto.SolutionData{
		Type: "solution",
		ID:   strconv.FormatInt(s.ID(), 10),
		Attributes: dto.SolutionAttributes{
			Checksum:   s.Checksum(),
			Mode:       s.Mode().String(),
			Lowest:     s.Lowest(),
			SeedCount:  s.SeedCount(),
			StageCount: s.StageCount(),
			DurationMS: float64(s.Duration().Microseconds()) / 1000,
			CreatedAt:  s.CreatedAt(),
		},
	}
}
