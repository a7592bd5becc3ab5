package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restockly/restock-dashboard/internal/api/handlers"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

func doExport(t *testing.T, svc *fakeService, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	handlers.RegisterExportRoutes(e, handlers.NewExportHandler(svc))

	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExportCSVFullList(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		products:   sampleRecords(),
		exportBody: "sku,stock\nZN-100,3\n",
	}

	rec := doExport(t, svc, "/api/v1/export/csv")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "restock-products.csv")
	assert.Equal(t, "sku,stock\nZN-100,3\n", rec.Body.String())
	assert.Len(t, svc.exported, 2, "no filter exports the full list")
}

func TestExportCSVFilteredByUrgency(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		products:   sampleRecords(),
		exportBody: "csv",
	}

	rec := doExport(t, svc, "/api/v1/export/csv?urgency=CRITICAL")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, svc.exported, 1, "active filter exports only matching records")
	assert.Equal(t, domain.UrgencyCritical, svc.exported[0].UrgencyLevel)
}

func TestExportCSVNoMatches(t *testing.T) {
	t.Parallel()

	svc := &fakeService{products: sampleRecords()}

	rec := doExport(t, svc, "/api/v1/export/csv?search=nonesuch")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no products to export")
}

func TestExportCSVUpstreamError(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		products:  sampleRecords(),
		exportErr: errors.New("backend down"),
	}

	rec := doExport(t, svc, "/api/v1/export/csv")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
