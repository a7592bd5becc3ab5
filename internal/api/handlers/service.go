// Package handlers implements HTTP handlers for the restock dashboard API.
package handlers

import (
	"context"
	"io"
	"time"

	"github.com/restockly/restock-dashboard/internal/product"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// ProductService is the slice of the product orchestrator the handlers
// consume.
type ProductService interface {
	GetProducts(ctx context.Context, opts product.FetchOptions) ([]domain.ProductRecord, error)
	RefreshProducts(ctx context.Context, opts product.FetchOptions) ([]domain.ProductRecord, error)
	GetTotalProducts(ctx context.Context, statuses []domain.ProductStatus, force bool) (domain.TotalCount, error)
	GetProductsByDateRange(ctx context.Context, start, end time.Time, futureDays string, status domain.ProductStatus) ([]domain.ProductRecord, error)
	ExportProducts(ctx context.Context, records []domain.ProductRecord) (io.ReadCloser, error)
	Loading() bool
}
