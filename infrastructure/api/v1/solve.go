// Package v1 implements the version 1 HTTP API.
package v1

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/rangemap"
	"github.com/helixml/rangemap/application/service"
	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/api/middleware"
	"github.com/helixml/rangemap/infrastructure/api/v1/dto"
)

// SolveRouter handles the solve and map endpoints.
type SolveRouter struct {
	client *rangemap.Client
	logger *slog.Logger
}

// NewSolveRouter creates a SolveRouter.
func NewSolveRouter(client *rangemap.Client) *SolveRouter {
	return &SolveRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the router for /solve.
func (r *SolveRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Solve)
	return router
}

// MapRoutes returns the router for /map.
func (r *SolveRouter) MapRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Map)
	return router
}

// Solve handles POST /api/v1/solve.
//
// The body is either a JSON dto.SolveRequest or the raw almanac, in which
// case mode, format and verify come from the query string.
func (r *SolveRouter) Solve(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	body, err := r.solveRequest(w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	mode, err := almanac.ParseMode(body.Mode)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	if body.Verify && mode != almanac.ModeRange {
		middleware.WriteError(w, req, fmt.Errorf("%w: verify needs range mode", middleware.ErrBadRequest), r.logger)
		return
	}

	a, err := parseAlmanac(body.Almanac, body.Format)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	result, err := r.client.Solver.Solve(ctx, a, mode)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resp := dto.SolveResponse{
		Mode:   mode.String(),
		Lowest: result.Lowest(),
		Cached: result.Cached(),
	}
	if sol := result.Solution(); sol.ID() != 0 {
		data := solutionData(sol)
		resp.Solution = &data
	}

	if body.Verify {
		verified, err := r.client.Solver.Verify(ctx, a)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		if verified != result.Lowest() {
			r.logger.ErrorContext(ctx, "verification disagrees",
				slog.Uint64("lowest", result.Lowest()),
				slog.Uint64("verified", verified),
			)
		}
		resp.Verified = &verified
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

func (r *SolveRouter) solveRequest(w http.ResponseWriter, req *http.Request) (dto.SolveRequest, error) {
	data, err := readBody(w, req)
	if err != nil {
		return dto.SolveRequest{}, err
	}

	query := req.URL.Query()
	if isJSON(req) {
		var body dto.SolveRequest
		if err := decodeJSON(data, &body); err != nil {
			return dto.SolveRequest{}, err
		}
		body.Mode = firstNonEmpty(body.Mode, query.Get("mode"))
		body.Format = firstNonEmpty(body.Format, query.Get("format"))
		return body, nil
	}

	verify, err := queryBool(req, "verify")
	if err != nil {
		return dto.SolveRequest{}, err
	}
	return dto.SolveRequest{
		Almanac: string(data),
		Format:  query.Get("format"),
		Mode:    query.Get("mode"),
		Verify:  verify,
	}, nil
}

// Map handles POST /api/v1/map.
//
// The body is either a JSON dto.MapRequest or the raw almanac with the value
// in the query string.
func (r *SolveRouter) Map(w http.ResponseWriter, req *http.Request) {
	body, err := r.mapRequest(w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	a, err := parseAlmanac(body.Almanac, body.Format)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	steps := r.client.Solver.Trace(a, body.Value)
	middleware.WriteJSON(w, http.StatusOK, mapResponse(body.Value, steps))
}

func (r *SolveRouter) mapRequest(w http.ResponseWriter, req *http.Request) (dto.MapRequest, error) {
	data, err := readBody(w, req)
	if err != nil {
		return dto.MapRequest{}, err
	}

	if isJSON(req) {
		var body dto.MapRequest
		if err := decodeJSON(data, &body); err != nil {
			return dto.MapRequest{}, err
		}
		body.Format = firstNonEmpty(body.Format, req.URL.Query().Get("format"))
		return body, nil
	}

	value, err := queryUint(req, "value")
	if err != nil {
		return dto.MapRequest{}, err
	}
	return dto.MapRequest{
		Almanac: string(data),
		Format:  req.URL.Query().Get("format"),
		Value:   value,
	}, nil
}

func mapResponse(value uint64, steps []service.Step) dto.MapResponse {
	resp := dto.MapResponse{
		Value:  value,
		Result: value,
		Steps:  make([]dto.StepResponse, len(steps)),
	}
	for i, s := range steps {
		resp.Steps[i] = dto.StepResponse{Stage: s.Stage, Input: s.Input, Output: s.Output}
	}
	if len(steps) > 0 {
		resp.Result = steps[len(steps)-1].Output
	}
	return resp
}
