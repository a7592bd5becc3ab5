package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "zinc", r.URL.Query().Get("search"))
		assert.Equal(t, "DRAFT", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [{"productId":"p1","variantId":1,"displayName":"Zinc Tablets","sku":null}],
			"totalFiltered": 1,
			"page": 2,
			"pageSize": 50,
			"loading": false
		}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	resp, err := c.ListProducts(t.Context(), &ListProductsParams{
		Search: "zinc",
		Status: "DRAFT",
		Page:   2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Zinc Tablets", resp.Products[0].DisplayName)
	assert.Nil(t, resp.Products[0].SKU)
	assert.Equal(t, 1, resp.TotalFiltered)
	assert.Equal(t, 2, resp.Page)
}

func TestRefreshProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/products/refresh", r.URL.Path)
		w.Write([]byte(`{"records":7}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	resp, err := c.RefreshProducts(t.Context(), "ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Records)
}

func TestGetTotals(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/total", r.URL.Path)
		assert.Equal(t, "ACTIVE,DRAFT", r.URL.Query().Get("statuses"))
		assert.Equal(t, "true", r.URL.Query().Get("force"))
		w.Write([]byte(`{"byStatus":{"ACTIVE":40,"DRAFT":{"count":2,"precision":"EXACT"}}}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	resp, err := c.GetTotals(t.Context(), "ACTIVE,DRAFT", true)
	require.NoError(t, err)

	assert.Equal(t, 40, resp.ByStatus["ACTIVE"].Count)
	assert.Equal(t, "EXACT", resp.ByStatus["DRAFT"].Precision)
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/export/csv", r.URL.Path)
		assert.Equal(t, "CRITICAL", r.URL.Query().Get("urgency"))
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("sku,stock\nZN-100,3\n"))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	stream, err := c.ExportCSV(t.Context(), "CRITICAL", "", "")
	require.NoError(t, err)
	defer stream.Close()

	body, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "sku,stock\nZN-100,3\n", string(body))
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"backend down"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	_, err := c.ListProducts(t.Context(), &ListProductsParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "backend down")
}

func TestServerNotRunning(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1")
	_, err := c.GetQuota(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}
