package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/carnetapp/carnet/internal/server/accesskey"
	"github.com/carnetapp/carnet/internal/tablestore"
)

// withAuth requires a valid bearer access key on the request.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		key, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || key == "" {
			writeError(w, http.StatusUnauthorized, tablestore.CodeUnauthorized, "missing access key")
			return
		}

		if _, err := accesskey.Verify(key, h.secret); err != nil {
			writeError(w, http.StatusUnauthorized, tablestore.CodeUnauthorized, "invalid access key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		h.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
