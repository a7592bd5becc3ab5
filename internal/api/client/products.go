package client

import (
	"context"
	"io"
	"net/url"
	"strconv"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// ProductsResponse wraps a paginated products response.
type ProductsResponse struct {
	Products      []domain.ProductRecord `json:"products"`
	TotalFiltered int                    `json:"totalFiltered"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"pageSize"`
	Loading       bool                   `json:"loading"`
}

// ListProductsParams defines query parameters for product list queries.
type ListProductsParams struct {
	ShortRangeDays int
	LongRangeDays  int
	FutureDays     string
	Status         string

	Urgency  string
	Search   string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

func (p *ListProductsParams) values() url.Values {
	q := url.Values{}
	if p.ShortRangeDays > 0 {
		q.Set("shortRangeDays", strconv.Itoa(p.ShortRangeDays))
	}
	if p.LongRangeDays > 0 {
		q.Set("longRangeDays", strconv.Itoa(p.LongRangeDays))
	}
	if p.FutureDays != "" {
		q.Set("futureDays", p.FutureDays)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Urgency != "" {
		q.Set("urgency", p.Urgency)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortDir != "" {
		q.Set("sortDir", p.SortDir)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return q
}

// ListProducts returns products matching the given parameters.
func (c *Client) ListProducts(ctx context.Context, params *ListProductsParams) (*ProductsResponse, error) {
	path := "/api/v1/products"
	if q := params.values(); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ProductsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshResponse reports how many records a forced refresh loaded.
type RefreshResponse struct {
	Records int `json:"records"`
}

// RefreshProducts forces a cache refresh on the server.
func (c *Client) RefreshProducts(ctx context.Context, status string) (*RefreshResponse, error) {
	path := "/api/v1/products/refresh"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var resp RefreshResponse
	if err := c.post(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTotals returns the product counts for the given statuses.
func (c *Client) GetTotals(ctx context.Context, statuses string, force bool) (*domain.TotalCount, error) {
	q := url.Values{}
	if statuses != "" {
		q.Set("statuses", statuses)
	}
	if force {
		q.Set("force", "true")
	}

	path := "/api/v1/products/total"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp domain.TotalCount
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RangeResponse wraps a date-range projection response.
type RangeResponse struct {
	Products []domain.ProductRecord `json:"products"`
}

// GetProductsByDateRange fetches products with date-range projections merged in.
func (c *Client) GetProductsByDateRange(ctx context.Context, startDate, endDate, futureDays, status string) (*RangeResponse, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	if futureDays != "" {
		q.Set("futureDays", futureDays)
	}
	if status != "" {
		q.Set("status", status)
	}

	var resp RangeResponse
	if err := c.get(ctx, "/api/v1/products/range?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportCSV streams the CSV export. The caller must close the stream.
func (c *Client) ExportCSV(ctx context.Context, urgency, search, status string) (io.ReadCloser, error) {
	q := url.Values{}
	if urgency != "" {
		q.Set("urgency", urgency)
	}
	if search != "" {
		q.Set("search", search)
	}
	if status != "" {
		q.Set("status", status)
	}

	path := "/api/v1/export/csv"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.getRaw(ctx, path)
}

// Quota is the upstream API quota status.
type Quota struct {
	DailyLimit int64  `json:"daily_limit"`
	DailyUsed  int64  `json:"daily_used"`
	Remaining  int64  `json:"remaining"`
	ResetAt    string `json:"reset_at"`
}

// GetQuota returns the upstream API quota status.
func (c *Client) GetQuota(ctx context.Context) (*Quota, error) {
	var resp Quota
	if err := c.get(ctx, "/api/v1/quota", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
