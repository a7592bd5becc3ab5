// Package view implements the derived-view pipeline every list screen
// recomputes: urgency filter, text search, column sort, page slice. All
// functions are pure; the cache is never mutated here.
package view

import (
	"sort"
	"strings"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// Direction is a sort direction.
type Direction string

// Sort directions. The empty value means unsorted.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sortable column names.
const (
	ColumnDisplayName             = "displayName"
	ColumnAvailableStock          = "availableStock"
	ColumnIncomingStock           = "incomingStock"
	ColumnRecommendedAverageStock = "recommendedAverageStock"
	ColumnUrgencyLevel            = "urgencyLevel"
)

const defaultPageSize = 50

// Params are the inputs of one pipeline evaluation.
type Params struct {
	Urgency       domain.UrgencyLevel // empty = no urgency filter
	Search        string              // matched against display name and SKU
	SortColumn    string              // empty = keep list order
	SortDirection Direction
	Page          int // 1-based; values < 1 clamp to 1
	PageSize      int // values < 1 fall back to the default
}

// Result is the output of one pipeline evaluation.
type Result struct {
	Items         []domain.ProductRecord
	TotalFiltered int
	Page          int
	PageSize      int
}

// Apply runs the pipeline stages in their fixed order: urgency filter,
// text filter, sort, page slice.
func Apply(products []domain.ProductRecord, p Params) Result {
	filtered := Filter(products, p.Urgency, p.Search)
	Sort(filtered, p.SortColumn, p.SortDirection)

	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = defaultPageSize
	}

	start := (page - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Items:         filtered[start:end],
		TotalFiltered: len(filtered),
		Page:          page,
		PageSize:      size,
	}
}

// Filter applies the urgency and text-search stages, returning a new
// slice. An urgency filter excludes records with no urgency level; the
// comparison is case-insensitive. The search term is trimmed and
// lowercased, then substring-matched against the display name and the
// (nullable) SKU.
func Filter(
	products []domain.ProductRecord,
	urgency domain.UrgencyLevel,
	search string,
) []domain.ProductRecord {
	term := strings.ToLower(strings.TrimSpace(search))

	filtered := make([]domain.ProductRecord, 0, len(products))
	for i := range products {
		p := &products[i]
		if urgency != "" && !urgencyMatches(p.UrgencyLevel, urgency) {
			continue
		}
		if term != "" && !searchMatches(p, term) {
			continue
		}
		filtered = append(filtered, *p)
	}
	return filtered
}

func urgencyMatches(have, want domain.UrgencyLevel) bool {
	return have != "" && strings.EqualFold(string(have), string(want))
}

func searchMatches(p *domain.ProductRecord, term string) bool {
	if strings.Contains(strings.ToLower(p.DisplayName), term) {
		return true
	}
	return p.SKU != nil && strings.Contains(strings.ToLower(*p.SKU), term)
}

// Sort stable-sorts the slice in place by the named column. String
// columns compare case-insensitively; an unknown column or empty
// direction leaves the order untouched.
func Sort(products []domain.ProductRecord, column string, dir Direction) {
	if column == "" || dir == "" {
		return
	}

	less := lessFunc(column)
	if less == nil {
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		if dir == Desc {
			return less(&products[j], &products[i])
		}
		return less(&products[i], &products[j])
	})
}

func lessFunc(column string) func(a, b *domain.ProductRecord) bool {
	switch column {
	case ColumnDisplayName:
		return func(a, b *domain.ProductRecord) bool {
			return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
		}
	case ColumnAvailableStock:
		return func(a, b *domain.ProductRecord) bool {
			return a.AvailableStock < b.AvailableStock
		}
	case ColumnIncomingStock:
		return func(a, b *domain.ProductRecord) bool {
			return a.IncomingStock < b.IncomingStock
		}
	case ColumnRecommendedAverageStock:
		return func(a, b *domain.ProductRecord) bool {
			return a.RecommendedAverageStock < b.RecommendedAverageStock
		}
	case ColumnUrgencyLevel:
		return func(a, b *domain.ProductRecord) bool {
			return strings.ToLower(string(a.UrgencyLevel)) <
				strings.ToLower(string(b.UrgencyLevel))
		}
	default:
		return nil
	}
}

// HasFilter reports whether any filter is active for export purposes:
// a search term, an urgency filter, or a non-default status selection.
func HasFilter(p Params, status domain.ProductStatus) bool {
	if strings.TrimSpace(p.Search) != "" {
		return true
	}
	if p.Urgency != "" {
		return true
	}
	return status != "" && status != domain.StatusActive
}
