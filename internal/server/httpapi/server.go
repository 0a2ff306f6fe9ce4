// Package httpapi exposes the row store over HTTP. Routing uses the
// standard library mux with method+path patterns; every table operation is
// a POST guarded by the access-key middleware.
package httpapi

import (
	"net/http"

	"github.com/carnetapp/carnet/internal/logging"
	"github.com/carnetapp/carnet/internal/server/store"
)

// Handler wires the store and its middleware into an http.Handler.
type Handler struct {
	store  *store.Store
	logger logging.Logger
	secret []byte
}

func NewHandler(s *store.Store, logger logging.Logger, secret []byte) *Handler {
	return &Handler{store: s, logger: logger, secret: secret}
}

// Router builds the route table.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", h.handleLivez)
	mux.Handle("POST /v1/tables/{table}/{op}", h.withAuth(http.HandlerFunc(h.handleTableOp)))

	return h.withRequestLog(mux)
}

func (h *Handler) handleLivez(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
