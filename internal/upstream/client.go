// Package upstream provides the restock-prediction backend client
// abstracted behind interfaces for testability.
package upstream

import (
	"context"
	"io"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// PredictionRequest defines the parameters for a restock-prediction fetch.
type PredictionRequest struct {
	Store          string
	ShortRangeDays int
	LongRangeDays  int
	FutureDays     string
	Status         domain.ProductStatus
	Limit          int
}

// RangeRequest defines the parameters for a per-date-range projection fetch.
// StartDate and EndDate are preformatted timestamps (see product package).
type RangeRequest struct {
	Store      string
	StartDate  string
	EndDate    string
	FutureDays string
	Status     domain.ProductStatus
}

// ExportRecord is the wire shape of one product row in a CSV export
// request. Urgency travels lowercased and empty SKUs as explicit nulls,
// matching what the export endpoint expects.
type ExportRecord struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	VariantID    int64   `json:"variantId"`
	DisplayName  string  `json:"displayName"`
	SKU          *string `json:"sku"`
	Status       string  `json:"status"`
	UrgencyLevel string  `json:"urgencyLevel"`

	AvailableStock int `json:"availableStock"`
	TotalInventory int `json:"totalInventory"`
	IncomingStock  int `json:"incomingStock"`

	ShortRangeSales      int     `json:"shortRangeSales"`
	LongRangeSales       int     `json:"longRangeSales"`
	PerDaySoldShortRange float64 `json:"perDaySoldShortRange"`
	PerDaySoldLongRange  float64 `json:"perDaySoldLongRange"`

	RecommendedAverageStock      float64 `json:"recommendedAverageStock"`
	RecommendedRestockShortRange float64 `json:"recommendedRestockShortRange"`
	RecommendedRestockLongRange  float64 `json:"recommendedRestockLongRange"`
}

// Client defines the interface for interacting with the restock backend.
type Client interface {
	// Predictions fetches and normalizes the restock-prediction records
	// for one store. A non-array response body yields an empty slice,
	// not an error.
	Predictions(ctx context.Context, req PredictionRequest) ([]domain.ProductRecord, error)

	// RangeProjections fetches per-date-range sales projections.
	RangeProjections(ctx context.Context, req RangeRequest) ([]domain.RangeProjection, error)

	// TotalCount fetches the product count for one store and status.
	TotalCount(ctx context.Context, store string, status domain.ProductStatus) (domain.Count, error)

	// ExportCSV posts the given records and returns the opaque CSV
	// stream produced by the backend. The caller owns the ReadCloser.
	ExportCSV(ctx context.Context, records []ExportRecord) (io.ReadCloser, error)
}

// TokenProvider defines the interface for obtaining bearer tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
