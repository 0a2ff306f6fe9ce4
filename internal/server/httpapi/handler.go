package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carnetapp/carnet/internal/server/store"
	"github.com/carnetapp/carnet/internal/tablestore"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) handleTableOp(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	op := r.PathValue("op")
	ctx := r.Context()

	switch op {
	case "insert":
		var req tablestore.InsertRequest
		if !decode(w, r, &req) {
			return
		}
		row, err := h.store.Insert(ctx, table, req.Row)
		if err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, tablestore.InsertResponse{Row: row})

	case "select":
		var req tablestore.SelectRequest
		if !decode(w, r, &req) {
			return
		}
		rows, err := h.store.Select(ctx, table, req)
		if err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tablestore.SelectResponse{Rows: rows})

	case "update":
		var req tablestore.UpdateRequest
		if !decode(w, r, &req) {
			return
		}
		if err := h.store.Update(ctx, table, req.Patch, req.Filters); err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})

	case "delete":
		var req tablestore.DeleteRequest
		if !decode(w, r, &req) {
			return
		}
		if err := h.store.Delete(ctx, table, req.Filters); err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})

	case "upsert":
		var req tablestore.UpsertRequest
		if !decode(w, r, &req) {
			return
		}
		if err := h.store.Upsert(ctx, table, req.Row, req.OnConflict); err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})

	default:
		writeError(w, http.StatusNotFound, tablestore.CodeBadRequest, "unknown operation "+op)
	}
}

// writeStoreError maps store failures to wire errors. Postgres errors keep
// their SQLSTATE so clients can distinguish uniqueness violations.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrUnknownTable):
		writeError(w, http.StatusNotFound, tablestore.CodeUnknownTable, err.Error())
	case errors.Is(err, store.ErrUnknownColumn):
		writeError(w, http.StatusBadRequest, tablestore.CodeUnknownColumn, err.Error())
	case errors.Is(err, store.ErrBadRequest):
		writeError(w, http.StatusBadRequest, tablestore.CodeBadRequest, err.Error())
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			status := http.StatusInternalServerError
			if pgErr.Code == tablestore.CodeUniqueViolation {
				status = http.StatusConflict
			}
			writeError(w, status, pgErr.Code, pgErr.Message)
			return
		}
		h.logger.Error(r.Context(), "store operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, tablestore.CodeStorage, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, tablestore.CodeBadRequest, "malformed request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": tablestore.Error{Code: code, Message: message},
	})
}
