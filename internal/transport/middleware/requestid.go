package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/minjae-dev/asset-management/pkg/logger"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID accepts an inbound X-Trace-ID or mints a new one, attaches a
// trace-scoped logger to the request context, and echoes the id back on
// the response so clients can correlate.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)

		w.Header().Set(TraceIDHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
