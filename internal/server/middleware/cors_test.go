package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, ParseOrigins(" http://a, ,http://b "))
	assert.Equal(t, []string{}, ParseOrigins(""))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		origins    []string
		method     string
		origin     string
		preflight  bool
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", []string{"http://localhost:5173"}, http.MethodGet, "http://localhost:5173", false, "http://localhost:5173", http.StatusOK},
		{"other origin", []string{"http://localhost:5173"}, http.MethodGet, "http://evil.test", false, "", http.StatusOK},
		{"wildcard", []string{"*"}, http.MethodGet, "http://any.test", false, "http://any.test", http.StatusOK},
		{"no origin", []string{"*"}, http.MethodGet, "", false, "", http.StatusOK},
		{"preflight", []string{"http://localhost:5173"}, http.MethodOptions, "http://localhost:5173", true, "http://localhost:5173", http.StatusNoContent},
		{"plain options", []string{"*"}, http.MethodOptions, "", false, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/search", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			w := httptest.NewRecorder()
			CORS(DefaultCORSConfig(tt.origins))(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.preflight {
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
			}
		})
	}
}
