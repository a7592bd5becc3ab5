package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restockly/restock-dashboard/internal/api/handlers"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

func TestGetTotalsSingle(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		total: domain.TotalCount{Single: &domain.Count{Count: 42}},
	}
	h := handlers.NewTotalsHandler(svc)

	_, api := humatest.New(t)
	handlers.RegisterTotalsRoutes(api, h)

	resp := api.Get("/api/v1/products/total?statuses=ACTIVE")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"single":42`)
	assert.False(t, svc.lastForce)
}

func TestGetTotalsByStatus(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		total: domain.TotalCount{ByStatus: map[domain.ProductStatus]domain.Count{
			domain.StatusActive: {Count: 40},
			domain.StatusDraft:  {Count: 2, Precision: "EXACT"},
		}},
	}
	h := handlers.NewTotalsHandler(svc)

	_, api := humatest.New(t)
	handlers.RegisterTotalsRoutes(api, h)

	resp := api.Get("/api/v1/products/total?statuses=active,draft&force=true")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"ACTIVE":40`)
	assert.Contains(t, body, `"precision":"EXACT"`)
	assert.True(t, svc.lastForce)
}

func TestGetTotalsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	h := handlers.NewTotalsHandler(svc)

	_, api := humatest.New(t)
	handlers.RegisterTotalsRoutes(api, h)

	resp := api.Get("/api/v1/products/total?statuses=ARCHIVED")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "unknown status")
}

func TestGetTotalsUpstreamError(t *testing.T) {
	t.Parallel()

	svc := &fakeService{totalErr: errors.New("backend down")}
	h := handlers.NewTotalsHandler(svc)

	_, api := humatest.New(t)
	handlers.RegisterTotalsRoutes(api, h)

	resp := api.Get("/api/v1/products/total")
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}
