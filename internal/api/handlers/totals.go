package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// TotalsHandler handles the total-product-count endpoint.
type TotalsHandler struct {
	service ProductService
}

// NewTotalsHandler creates a new TotalsHandler.
func NewTotalsHandler(s ProductService) *TotalsHandler {
	return &TotalsHandler{service: s}
}

// GetTotalsInput is the input for fetching product counts.
type GetTotalsInput struct {
	Statuses string `query:"statuses" doc:"Comma-separated status list (default ACTIVE)" example:"ACTIVE,DRAFT"`
	Force    bool   `query:"force"    doc:"Bypass the cached count"`
}

// GetTotalsOutput is the response for fetching product counts.
type GetTotalsOutput struct {
	Body domain.TotalCount
}

// GetTotals returns the product count per requested status. A request
// for several statuses fails as a whole if any one of them fails.
func (h *TotalsHandler) GetTotals(
	ctx context.Context,
	input *GetTotalsInput,
) (*GetTotalsOutput, error) {
	var statuses []domain.ProductStatus
	for _, s := range strings.Split(input.Statuses, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		switch status := domain.ProductStatus(strings.ToUpper(s)); status {
		case domain.StatusActive, domain.StatusDraft:
			statuses = append(statuses, status)
		default:
			return nil, huma.Error422UnprocessableEntity("unknown status: " + s)
		}
	}

	total, err := h.service.GetTotalProducts(ctx, statuses, input.Force)
	if err != nil {
		return nil, huma.Error502BadGateway("total count fetch failed: " + err.Error())
	}

	return &GetTotalsOutput{Body: total}, nil
}

// RegisterTotalsRoutes registers the totals endpoint with the Huma API.
func RegisterTotalsRoutes(api huma.API, h *TotalsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-product-totals",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/total",
		Summary:     "Get product counts",
		Description: "Returns the total product count per status, cached per status set.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.GetTotals)
}
