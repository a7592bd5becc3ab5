package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restockly/restock-dashboard/internal/product"
	"github.com/restockly/restock-dashboard/internal/view"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// ExportHandler streams CSV exports. It is Echo-native rather than a
// Huma operation: the response body is an opaque CSV stream from the
// backend, not a JSON document.
type ExportHandler struct {
	service ProductService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(s ProductService) *ExportHandler {
	return &ExportHandler{service: s}
}

// ExportCSV streams the CSV export for the current product list. When
// any filter is active (urgency, search, non-default status) only the
// filtered records are exported; otherwise the full cached list is.
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	ctx := c.Request().Context()

	status := domain.ProductStatus(c.QueryParam("status"))
	params := view.Params{
		Urgency:       domain.UrgencyLevel(c.QueryParam("urgency")),
		Search:        c.QueryParam("search"),
		SortColumn:    c.QueryParam("sortBy"),
		SortDirection: view.Direction(c.QueryParam("sortDir")),
	}

	products, err := h.service.GetProducts(ctx, product.FetchOptions{Status: status})
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "product fetch failed: " + err.Error()})
	}

	selection := view.ExportSelection(products, params, status)
	if len(selection) == 0 {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no products to export"})
	}

	stream, err := h.service.ExportProducts(ctx, selection)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "export failed: " + err.Error()})
	}
	defer stream.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="restock-products.csv"`)
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)

	if _, err := io.Copy(c.Response(), stream); err != nil {
		return err
	}
	return nil
}

// RegisterExportRoutes registers the export endpoint on the Echo router.
func RegisterExportRoutes(e *echo.Echo, h *ExportHandler) {
	e.GET("/api/v1/export/csv", h.ExportCSV)
}
