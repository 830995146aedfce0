package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]bool{"ok": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"ok":true},"error":null}`, w.Body.String())
}

func TestFail(t *testing.T) {
	resp := Fail("X", "msg", "")
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "X", resp.Error.Code)

	w := httptest.NewRecorder()
	JSON(w, http.StatusTeapot, resp)
	assert.JSONEq(t, `{"data":null,"error":{"code":"X","message":"msg"}}`, w.Body.String())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found type", &errors.NotFoundError{Resource: "tool", ID: "1"}, http.StatusNotFound, "NOT_FOUND"},
		{"not found sentinel", fmt.Errorf("get: %w", errors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"validation", errors.NewValidationError("limit", "x", "must be an integer"), http.StatusBadRequest, "BAD_REQUEST"},
		{"timeout", fmt.Errorf("q: %w", errors.ErrTimeout), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			FromError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Nil(t, body["data"])
			assert.Equal(t, tt.code, body["error"].(map[string]any)["code"])
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowed(w, http.MethodPost)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "POST")
}
