package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/helixml/rangemap/application/service"
	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/interval"
	"github.com/helixml/rangemap/domain/remap"
	"github.com/helixml/rangemap/infrastructure/almanacfile"
	"github.com/helixml/rangemap/internal/database"
	"github.com/helixml/rangemap/internal/log"
)

// ErrBadRequest marks request errors found by the handlers themselves, such
// as undecodable bodies or malformed path parameters.
var ErrBadRequest = errors.New("bad request")

// JSONAPIError is one entry of a JSON:API error document.
type JSONAPIError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// JSONAPIErrorResponse is a JSON:API error document.
type JSONAPIErrorResponse struct {
	Errors []JSONAPIError `json:"errors"`
}

// StatusFor maps an error to its HTTP status and title.
func StatusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "Request Too Large"
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, service.ErrPersistenceDisabled):
		return http.StatusServiceUnavailable, "Persistence Disabled"
	case errors.Is(err, service.ErrEnumerationBudget):
		return http.StatusUnprocessableEntity, "Enumeration Budget Exceeded"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, almanacfile.ErrSyntax),
		errors.Is(err, almanacfile.ErrBrokenChain),
		errors.Is(err, almanacfile.ErrUnknownFormat),
		errors.Is(err, almanac.ErrNoSeeds),
		errors.Is(err, almanac.ErrOddSeedCount),
		errors.Is(err, almanac.ErrInvalidSeed),
		errors.Is(err, almanac.ErrUnknownMode),
		errors.Is(err, interval.ErrEmpty),
		errors.Is(err, interval.ErrOverflow),
		errors.Is(err, remap.ErrNoInput):
		return http.StatusBadRequest, "Validation Error"
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// WriteError writes err as a JSON:API error document.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, title := StatusFor(err)

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request error",
			slog.Int("status", status),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	writeErrorDocument(w, r, status, title, err.Error())
}

// WriteJSON writes data as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorDocument(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	resp := JSONAPIErrorResponse{
		Errors: []JSONAPIError{{
			Status: strconv.Itoa(status),
			Title:  title,
			Detail: detail,
			ID:     log.CorrelationID(r.Context()),
		}},
	}
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
