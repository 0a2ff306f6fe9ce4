package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carnetapp/carnet/internal/logging"
	"github.com/carnetapp/carnet/internal/server/accesskey"
	"github.com/carnetapp/carnet/internal/server/store"
	"github.com/carnetapp/carnet/internal/tablestore"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

// newTestRouter builds a router over a store without a database. Requests
// that fail validation never reach the database, so these paths are fully
// testable in-process.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewHandler(store.New(nil), logger, testSecret).Router()
}

func mintKey(t *testing.T, secret []byte) string {
	t.Helper()
	key, err := accesskey.Mint(secret, accesskey.RoleAnon, 0)
	require.NoError(t, err)
	return key
}

func doTableOp(t *testing.T, router http.Handler, auth, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) tablestore.Error {
	t.Helper()
	var envelope struct {
		Error tablestore.Error `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Error
}

func TestLivez(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTableOpRequiresAccessKey(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		auth string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"empty key", "Bearer "},
		{"garbage key", "Bearer not-a-jwt"},
		{"wrongly signed key", "Bearer " + mintKey(t, []byte("other-secret"))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doTableOp(t, router, tc.auth, "/v1/tables/users/select", `{}`)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, tablestore.CodeUnauthorized, decodeError(t, rec).Code)
		})
	}
}

func TestUnknownTable(t *testing.T) {
	router := newTestRouter(t)

	rec := doTableOp(t, router, "Bearer "+mintKey(t, testSecret), "/v1/tables/secrets/select", `{}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, tablestore.CodeUnknownTable, decodeError(t, rec).Code)
}

func TestUnknownColumnRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := doTableOp(t, router, "Bearer "+mintKey(t, testSecret), "/v1/tables/users/select",
		`{"filters":[{"column":"role","op":"eq","value":"admin"}]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, tablestore.CodeUnknownColumn, decodeError(t, rec).Code)
}

func TestBlanketDeleteRefused(t *testing.T) {
	router := newTestRouter(t)

	rec := doTableOp(t, router, "Bearer "+mintKey(t, testSecret), "/v1/tables/contacts/delete", `{"filters":[]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, tablestore.CodeBadRequest, decodeError(t, rec).Code)
}

func TestMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	rec := doTableOp(t, router, "Bearer "+mintKey(t, testSecret), "/v1/tables/users/insert", `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, tablestore.CodeBadRequest, decodeError(t, rec).Code)
}

func TestUnknownOperation(t *testing.T) {
	router := newTestRouter(t)

	rec := doTableOp(t, router, "Bearer "+mintKey(t, testSecret), "/v1/tables/users/truncate", `{}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, tablestore.CodeBadRequest, decodeError(t, rec).Code)
}

func TestTableOpRejectsGet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/tables/users/select", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
