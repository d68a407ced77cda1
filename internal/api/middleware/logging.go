package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"zerim-todo/internal/logging"
)

type contextKey string

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey contextKey = "request_id"

// LoggingMiddleware logs requests and responses with a request ID that is
// generated when the client does not supply one.
type LoggingMiddleware struct {
	logger logging.Logger
}

// NewLoggingMiddleware creates request logging middleware.
func NewLoggingMiddleware(logger logging.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger.WithComponent("http")}
}

// Handler returns the middleware handler.
func (lm *LoggingMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Upgrade requests need the raw ResponseWriter: the wrapper
			// would hide http.Hijacker from the websocket upgrader.
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", requestID)

			wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapper, r)

			// Health and heartbeat probes would drown out real traffic.
			if r.URL.Path == "/api/health" || r.URL.Path == "/ping" {
				return
			}

			duration := time.Since(start)
			fields := []interface{}{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapper.statusCode,
				"duration_ms", duration.Milliseconds(),
				"remote", r.RemoteAddr,
			}
			if wrapper.statusCode >= 500 {
				lm.logger.Error("request failed", fields...)
			} else if wrapper.statusCode >= 400 {
				lm.logger.Warn("request rejected", fields...)
			} else {
				lm.logger.Info("request completed", fields...)
			}
		})
	}
}

// responseWriter captures the status code for logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// GetRequestID extracts the request ID from a request context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
