package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		dbPing     func() error
		path       string
		wantStatus int
	}{
		{"healthz always ok", nil, "/healthz", http.StatusOK},
		{"healthz ok with failing db", func() error { return errors.New("down") }, "/healthz", http.StatusOK},
		{"readyz without db", nil, "/readyz", http.StatusOK},
		{"readyz with healthy db", func() error { return nil }, "/readyz", http.StatusOK},
		{"readyz with failing db", func() error { return errors.New("down") }, "/readyz", http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler(tc.dbPing).Register(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			if w.Code != tc.wantStatus {
				t.Fatalf("GET %s = %d, want %d", tc.path, w.Code, tc.wantStatus)
			}
		})
	}
}
