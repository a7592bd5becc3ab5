package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// DateRangeHandler handles per-date-range projection requests.
type DateRangeHandler struct {
	service ProductService
}

// NewDateRangeHandler creates a new DateRangeHandler.
func NewDateRangeHandler(s ProductService) *DateRangeHandler {
	return &DateRangeHandler{service: s}
}

// GetDateRangeInput is the input for a date-range projection fetch.
// Reversed ranges are swapped, not rejected.
type GetDateRangeInput struct {
	StartDate  string `query:"startDate"  doc:"Range start (YYYY-MM-DD)" required:"true"`
	EndDate    string `query:"endDate"    doc:"Range end (YYYY-MM-DD)"   required:"true"`
	FutureDays string `query:"futureDays" doc:"Projection horizon in days"`
	Status     string `query:"status"     doc:"Product status filter"    enum:"ACTIVE,DRAFT,"`
}

// GetDateRangeOutput is the response for a date-range projection fetch:
// the cached list with range projections merged in.
type GetDateRangeOutput struct {
	Body struct {
		Products []domain.ProductRecord `json:"products"`
	}
}

// GetDateRange fetches sales projections for a date range and merges
// them onto the cached product list.
func (h *DateRangeHandler) GetDateRange(
	ctx context.Context,
	input *GetDateRangeInput,
) (*GetDateRangeOutput, error) {
	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid startDate: " + input.StartDate)
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid endDate: " + input.EndDate)
	}

	products, err := h.service.GetProductsByDateRange(
		ctx,
		start,
		end,
		input.FutureDays,
		domain.ProductStatus(input.Status),
	)
	if err != nil {
		return nil, huma.Error502BadGateway("range fetch failed: " + err.Error())
	}

	resp := &GetDateRangeOutput{}
	resp.Body.Products = products
	return resp, nil
}

// RegisterDateRangeRoutes registers the date-range endpoint with the Huma API.
func RegisterDateRangeRoutes(api huma.API, h *DateRangeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-products-by-date-range",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/range",
		Summary:     "Get products with date-range projections",
		Description: "Fetches sales projections for a custom date range and merges them onto the cached list.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.GetDateRange)
}
