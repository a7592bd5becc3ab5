package upstream

import (
	"encoding/json"
	"strings"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// rawRecord is the union of the two response shapes the backend emits:
// flat restock-prediction records, and nested product trees carrying a
// variants array. A record is nested iff Variants is non-empty.
type rawRecord struct {
	ProductID    string               `json:"productId"`
	ProductName  string               `json:"productName"`
	ProductImage string               `json:"productImage"`
	Status       domain.ProductStatus `json:"status"`
	Variants     []rawVariant         `json:"variants"`

	// Flat-record fields, ignored when Variants is present.
	VariantID    int64               `json:"variantId"`
	VariantName  string              `json:"variantName"`
	SKU          *string             `json:"sku"`
	UrgencyLevel domain.UrgencyLevel `json:"urgencyLevel"`

	inventoryFields
	salesFields
}

// rawVariant is one variant inside a nested product tree.
type rawVariant struct {
	VariantID    int64               `json:"variantId"`
	VariantName  string              `json:"variantName"`
	VariantImage string              `json:"variantImage"`
	SKU          *string             `json:"sku"`
	UrgencyLevel domain.UrgencyLevel `json:"urgencyLevel"`

	inventoryFields
	salesFields
}

type inventoryFields struct {
	AvailableStock int `json:"availableStock"`
	TotalInventory int `json:"totalInventory"`
	IncomingStock  int `json:"incomingStock"`
}

type salesFields struct {
	ShortRangeSales      int     `json:"shortRangeSales"`
	LongRangeSales       int     `json:"longRangeSales"`
	PerDaySoldShortRange float64 `json:"perDaySoldShortRange"`
	PerDaySoldLongRange  float64 `json:"perDaySoldLongRange"`

	RecommendedAverageStock      float64 `json:"recommendedAverageStock"`
	RecommendedRestockShortRange float64 `json:"recommendedRestockShortRange"`
	RecommendedRestockLongRange  float64 `json:"recommendedRestockLongRange"`

	TotalSales         int     `json:"totalSales"`
	SoldPerDay         float64 `json:"soldPerDay"`
	RecommendedRestock float64 `json:"recommendedRestock"`
}

// DecodeRecords normalizes a raw response body into flat product records.
// Non-array bodies decode to an empty slice; this is deliberate leniency,
// not an error path. Flat input passes through unchanged apart from the
// derived display name, so normalization is idempotent.
func DecodeRecords(body []byte) []domain.ProductRecord {
	var raws []rawRecord
	if err := json.Unmarshal(body, &raws); err != nil {
		return []domain.ProductRecord{}
	}

	records := make([]domain.ProductRecord, 0, len(raws))
	for i := range raws {
		records = append(records, flatten(&raws[i])...)
	}
	return records
}

func flatten(r *rawRecord) []domain.ProductRecord {
	if len(r.Variants) == 0 {
		return []domain.ProductRecord{toRecord(r)}
	}

	records := make([]domain.ProductRecord, 0, len(r.Variants))
	for i := range r.Variants {
		records = append(records, toVariantRecord(r, &r.Variants[i]))
	}
	return records
}

func toRecord(r *rawRecord) domain.ProductRecord {
	return domain.ProductRecord{
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		ProductImage: r.ProductImage,
		VariantID:    r.VariantID,
		VariantName:  r.VariantName,
		DisplayName:  domain.DisplayName(r.ProductName, r.VariantName),

		AvailableStock: r.AvailableStock,
		TotalInventory: r.TotalInventory,
		IncomingStock:  r.IncomingStock,

		ShortRangeSales:      r.ShortRangeSales,
		LongRangeSales:       r.LongRangeSales,
		PerDaySoldShortRange: r.PerDaySoldShortRange,
		PerDaySoldLongRange:  r.PerDaySoldLongRange,

		RecommendedAverageStock:      r.RecommendedAverageStock,
		RecommendedRestockShortRange: r.RecommendedRestockShortRange,
		RecommendedRestockLongRange:  r.RecommendedRestockLongRange,

		TotalSales:         r.TotalSales,
		SoldPerDay:         r.SoldPerDay,
		RecommendedRestock: r.RecommendedRestock,

		UrgencyLevel: r.UrgencyLevel,
		Status:       r.Status,
		SKU:          r.SKU,
	}
}

func toVariantRecord(r *rawRecord, v *rawVariant) domain.ProductRecord {
	image := r.ProductImage
	if v.VariantImage != "" {
		image = v.VariantImage
	}

	return domain.ProductRecord{
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		ProductImage: image,
		VariantID:    v.VariantID,
		VariantName:  v.VariantName,
		DisplayName:  domain.DisplayName(r.ProductName, v.VariantName),

		AvailableStock: v.AvailableStock,
		TotalInventory: v.TotalInventory,
		IncomingStock:  v.IncomingStock,

		ShortRangeSales:      v.ShortRangeSales,
		LongRangeSales:       v.LongRangeSales,
		PerDaySoldShortRange: v.PerDaySoldShortRange,
		PerDaySoldLongRange:  v.PerDaySoldLongRange,

		RecommendedAverageStock:      v.RecommendedAverageStock,
		RecommendedRestockShortRange: v.RecommendedRestockShortRange,
		RecommendedRestockLongRange:  v.RecommendedRestockLongRange,

		TotalSales:         v.TotalSales,
		SoldPerDay:         v.SoldPerDay,
		RecommendedRestock: v.RecommendedRestock,

		UrgencyLevel: v.UrgencyLevel,
		Status:       r.Status,
		SKU:          v.SKU,
	}
}

// ToExportRecords converts display records into the export wire shape.
// Urgency is lowercased and missing SKUs stay explicit nulls, matching
// what the CSV endpoint expects.
func ToExportRecords(records []domain.ProductRecord) []ExportRecord {
	out := make([]ExportRecord, 0, len(records))
	for i := range records {
		out = append(out, toExportRecord(&records[i]))
	}
	return out
}

func toExportRecord(p *domain.ProductRecord) ExportRecord {
	return ExportRecord{
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		VariantID:    p.VariantID,
		DisplayName:  p.DisplayName,
		SKU:          p.SKU,
		Status:       string(p.Status),
		UrgencyLevel: strings.ToLower(string(p.UrgencyLevel)),

		AvailableStock: p.AvailableStock,
		TotalInventory: p.TotalInventory,
		IncomingStock:  p.IncomingStock,

		ShortRangeSales:      p.ShortRangeSales,
		LongRangeSales:       p.LongRangeSales,
		PerDaySoldShortRange: p.PerDaySoldShortRange,
		PerDaySoldLongRange:  p.PerDaySoldLongRange,

		RecommendedAverageStock:      p.RecommendedAverageStock,
		RecommendedRestockShortRange: p.RecommendedRestockShortRange,
		RecommendedRestockLongRange:  p.RecommendedRestockLongRange,
	}
}
