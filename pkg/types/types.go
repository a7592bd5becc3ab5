// Package domain defines the core business types for the restock dashboard.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProductStatus represents the storefront publication state of a product.
type ProductStatus string

// Product status constants.
const (
	StatusActive ProductStatus = "ACTIVE"
	StatusDraft  ProductStatus = "DRAFT"
)

// UrgencyLevel is the derived restock priority signal attached to a record.
type UrgencyLevel string

// Urgency level constants.
const (
	UrgencyLow      UrgencyLevel = "LOW"
	UrgencyMedium   UrgencyLevel = "MEDIUM"
	UrgencyHigh     UrgencyLevel = "HIGH"
	UrgencyCritical UrgencyLevel = "CRITICAL"
)

// Description returns the operator guidance text for an urgency level.
func (u UrgencyLevel) Description() string {
	switch u {
	case UrgencyLow:
		return "Stock is low (< 5). Immediate restock required"
	case UrgencyMedium:
		return "Stock is moderate (>= 5 and < 10). Plan restock soon"
	case UrgencyHigh:
		return "Stock is decreasing (>= 10 and < 20). Restock recommended"
	case UrgencyCritical:
		return "Stock level is high (>= 20). Monitor regularly"
	default:
		return "No urgency level found."
	}
}

// DefaultVariantTitle is the sentinel variant name the storefront assigns
// to products without real variants. Records carrying it display the bare
// product name.
const DefaultVariantTitle = "Default Title"

// DisplayName derives the display name for a (product, variant) pair.
// The variant name is appended unless it is empty or the sentinel title.
func DisplayName(productName, variantName string) string {
	if variantName == "" || variantName == DefaultVariantTitle {
		return productName
	}
	return productName + " - " + variantName
}

// ProductRecord is the canonical post-normalization display record.
// One record exists per (product, variant) pair within a store.
type ProductRecord struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`
	VariantID    int64  `json:"variantId"`
	VariantName  string `json:"variantName,omitempty"`
	DisplayName  string `json:"displayName"`

	// Inventory
	AvailableStock int `json:"availableStock"`
	TotalInventory int `json:"totalInventory"`
	IncomingStock  int `json:"incomingStock"`

	// Sales velocity over the two lookback windows
	ShortRangeSales      int     `json:"shortRangeSales"`
	LongRangeSales       int     `json:"longRangeSales"`
	PerDaySoldShortRange float64 `json:"perDaySoldShortRange"`
	PerDaySoldLongRange  float64 `json:"perDaySoldLongRange"`

	// Restock recommendations
	RecommendedAverageStock      float64 `json:"recommendedAverageStock"`
	RecommendedRestockShortRange float64 `json:"recommendedRestockShortRange"`
	RecommendedRestockLongRange  float64 `json:"recommendedRestockLongRange"`

	// Per-date-range overlay, populated by range projections
	TotalSales         int     `json:"totalSales,omitempty"`
	SoldPerDay         float64 `json:"soldPerDay,omitempty"`
	RecommendedRestock float64 `json:"recommendedRestock,omitempty"`

	UrgencyLevel UrgencyLevel  `json:"urgencyLevel,omitempty"`
	Status       ProductStatus `json:"status,omitempty"`
	SKU          *string       `json:"sku"`
}

// Key identifies a record within a result set.
func (p *ProductRecord) Key() ProductKey {
	return ProductKey{ProductID: p.ProductID, VariantID: p.VariantID}
}

// ProductKey is the (product, variant) identifier pair.
type ProductKey struct {
	ProductID string
	VariantID int64
}

// RangeProjection is a per-date-range sales projection for one variant.
// It overlays TotalSales, SoldPerDay, and RecommendedRestock onto the
// matching cached record.
type RangeProjection struct {
	ProductID          string  `json:"productId"`
	VariantID          int64   `json:"variantId"`
	TotalSales         int     `json:"totalSales"`
	SoldPerDay         float64 `json:"soldPerDay"`
	RecommendedRestock float64 `json:"recommendedRestock"`
}

// Count is a product count as returned by the backend: either a bare
// integer or a precision-qualified {count, precision} object. Both
// shapes are accepted and re-emitted unmodified.
type Count struct {
	Count     int    `json:"count"`
	Precision string `json:"precision,omitempty"`
}

// UnmarshalJSON accepts both the bare-integer and object count shapes.
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		c.Precision = ""
		if err := json.Unmarshal(data, &c.Count); err != nil {
			return fmt.Errorf("parsing count: %w", err)
		}
		return nil
	}

	type alias Count
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("parsing count object: %w", err)
	}
	*c = Count(a)
	return nil
}

// MarshalJSON re-emits the shape the backend produced: a bare integer
// when no precision was supplied, the object form otherwise.
func (c Count) MarshalJSON() ([]byte, error) {
	if c.Precision == "" {
		return json.Marshal(c.Count)
	}
	type alias Count
	return json.Marshal(alias(c))
}

// TotalCount is the result of a total-product-count fetch. Exactly one
// of Single or ByStatus is set: Single for a one-status request,
// ByStatus keyed by status for a multi-status request.
type TotalCount struct {
	Single   *Count                  `json:"single,omitempty"`
	ByStatus map[ProductStatus]Count `json:"byStatus,omitempty"`
}

// FetchParams is the parameter tuple that keys a cached product result.
type FetchParams struct {
	ShortRangeDays int           `json:"shortRangeDays"`
	LongRangeDays  int           `json:"longRangeDays"`
	FutureDays     string        `json:"futureDays"`
	Status         ProductStatus `json:"status"`
	StoreURL       string        `json:"storeUrl"`
}

// TotalCountParams keys a cached total-count result. Statuses may hold
// one or several values; set equality ignores order.
type TotalCountParams struct {
	StoreURL string          `json:"storeUrl"`
	Statuses []ProductStatus `json:"statuses"`
}
