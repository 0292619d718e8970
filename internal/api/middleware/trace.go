package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/slack-taskbot/internal/api/shared"
	"github.com/phrazzld/slack-taskbot/internal/platform/logger"
)

// NewTraceMiddleware adds a trace ID to the request context, echoes it in
// the X-Trace-ID response header and stores a logger carrying it in the
// context. Apply it early so later handlers and subscribers can correlate
// their logs with the request.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(shared.TraceIDHeader)
			if traceID == "" {
				traceID = shared.NewTraceID()
			}

			ctx := shared.WithTraceID(r.Context(), traceID)
			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
