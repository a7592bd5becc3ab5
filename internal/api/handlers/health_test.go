package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/restockly/restock-dashboard/internal/api/handlers"
	"github.com/restockly/restock-dashboard/internal/session"
)

func TestHealthz(t *testing.T) {
	t.Parallel()

	e := echo.New()
	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(
		session.NewStaticProvider("alpha.example.com", "token"),
	))

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{"authenticated", "token", http.StatusOK, `"status":"ready"`},
		{"no token", "", http.StatusServiceUnavailable, `"status":"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(
				session.NewStaticProvider("alpha.example.com", tt.token),
			))

			req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
