package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/restockly/restock-dashboard/internal/product"
	"github.com/restockly/restock-dashboard/internal/view"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// ProductsHandler handles product list and refresh endpoints.
type ProductsHandler struct {
	service ProductService
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s ProductService) *ProductsHandler {
	return &ProductsHandler{service: s}
}

// --- Input/Output types ---

// ListProductsInput is the input for listing products. Fetch parameters
// key the cache; view parameters shape the response without refetching.
type ListProductsInput struct {
	ShortRangeDays int    `query:"shortRangeDays" doc:"Short sales lookback window in days"  minimum:"0"`
	LongRangeDays  int    `query:"longRangeDays"  doc:"Long sales lookback window in days"   minimum:"0"`
	FutureDays     string `query:"futureDays"     doc:"Projection horizon in days"`
	Status         string `query:"status"         doc:"Product status filter"                enum:"ACTIVE,DRAFT,"`

	Urgency  string `query:"urgency"  doc:"Urgency level filter"                 enum:"LOW,MEDIUM,HIGH,CRITICAL,"`
	Search   string `query:"search"   doc:"Substring match on display name and SKU"`
	SortBy   string `query:"sortBy"   doc:"Sort column"                          enum:"displayName,availableStock,incomingStock,recommendedAverageStock,urgencyLevel,"`
	SortDir  string `query:"sortDir"  doc:"Sort direction"                       enum:"asc,desc,"`
	Page     int    `query:"page"     doc:"1-based page number"                  minimum:"0"`
	PageSize int    `query:"pageSize" doc:"Records per page (default 50)"        minimum:"0" maximum:"1000"`
}

// ListProductsOutput is the response for listing products.
type ListProductsOutput struct {
	Body struct {
		Products      []domain.ProductRecord `json:"products"`
		TotalFiltered int                    `json:"totalFiltered"`
		Page          int                    `json:"page"`
		PageSize      int                    `json:"pageSize"`
		Loading       bool                   `json:"loading"`
	}
}

// RefreshProductsInput is the input for a forced refresh.
type RefreshProductsInput struct {
	ShortRangeDays int    `query:"shortRangeDays" doc:"Short sales lookback window in days" minimum:"0"`
	LongRangeDays  int    `query:"longRangeDays"  doc:"Long sales lookback window in days"  minimum:"0"`
	FutureDays     string `query:"futureDays"     doc:"Projection horizon in days"`
	Status         string `query:"status"         doc:"Product status filter"               enum:"ACTIVE,DRAFT,"`
}

// RefreshProductsOutput is the response for a forced refresh.
type RefreshProductsOutput struct {
	Body struct {
		Records int `json:"records"`
	}
}

// --- Handlers ---

// ListProducts returns the product list for the given fetch parameters,
// served from the cache when valid, with the view pipeline (urgency,
// search, sort, pagination) applied on top.
func (h *ProductsHandler) ListProducts(
	ctx context.Context,
	input *ListProductsInput,
) (*ListProductsOutput, error) {
	products, err := h.service.GetProducts(ctx, product.FetchOptions{
		ShortRangeDays: input.ShortRangeDays,
		LongRangeDays:  input.LongRangeDays,
		FutureDays:     input.FutureDays,
		Status:         domain.ProductStatus(input.Status),
	})
	if err != nil {
		return nil, huma.Error502BadGateway("product fetch failed: " + err.Error())
	}

	result := view.Apply(products, view.Params{
		Urgency:       domain.UrgencyLevel(input.Urgency),
		Search:        input.Search,
		SortColumn:    input.SortBy,
		SortDirection: view.Direction(input.SortDir),
		Page:          input.Page,
		PageSize:      input.PageSize,
	})

	resp := &ListProductsOutput{}
	resp.Body.Products = result.Items
	resp.Body.TotalFiltered = result.TotalFiltered
	resp.Body.Page = result.Page
	resp.Body.PageSize = result.PageSize
	resp.Body.Loading = h.service.Loading()

	return resp, nil
}

// RefreshProducts bypasses the cache and refetches from the backend.
func (h *ProductsHandler) RefreshProducts(
	ctx context.Context,
	input *RefreshProductsInput,
) (*RefreshProductsOutput, error) {
	records, err := h.service.RefreshProducts(ctx, product.FetchOptions{
		ShortRangeDays: input.ShortRangeDays,
		LongRangeDays:  input.LongRangeDays,
		FutureDays:     input.FutureDays,
		Status:         domain.ProductStatus(input.Status),
	})
	if err != nil {
		return nil, huma.Error502BadGateway("product refresh failed: " + err.Error())
	}

	resp := &RefreshProductsOutput{}
	resp.Body.Records = len(records)
	return resp, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns restock predictions with urgency filter, search, sort, and pagination applied.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusBadGateway},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID: "refresh-products",
		Method:      http.MethodPost,
		Path:        "/api/v1/products/refresh",
		Summary:     "Refresh the product cache",
		Description: "Bypasses the cache and refetches restock predictions from the backend.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusBadGateway},
	}, h.RefreshProducts)
}
