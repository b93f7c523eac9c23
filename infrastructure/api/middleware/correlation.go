package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/helixml/rangemap/internal/log"
)

// CorrelationIDHeader is read from requests and echoed on responses.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID puts a correlation ID on the request context so every log
// line written while serving the request carries it. The client's header wins;
// otherwise chi's request ID is used.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetReqID(ctx)

		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = requestID
		}
		if id != "" {
			w.Header().Set(CorrelationIDHeader, id)
			ctx = log.WithCorrelationID(ctx, id)
		}
		if requestID != "" {
			ctx = log.WithRequestID(ctx, requestID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
