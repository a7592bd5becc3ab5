// Package product orchestrates product fetches: it decides between the
// cache and the network, brackets fetches with the loading flag, and
// merges date-range projections onto the cached list.
package product

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/restockly/restock-dashboard/internal/cache"
	"github.com/restockly/restock-dashboard/internal/metrics"
	"github.com/restockly/restock-dashboard/internal/session"
	"github.com/restockly/restock-dashboard/internal/upstream"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// Default fetch parameters, applied when a request leaves them unset.
const (
	DefaultShortRangeDays = 7
	DefaultLongRangeDays  = 30
	DefaultFutureDays     = "15"
)

// DefaultStatus is the status selection applied when none is given.
const DefaultStatus = domain.StatusActive

// FetchOptions are the caller-supplied knobs of a product fetch. Zero
// values fall back to the defaults above.
type FetchOptions struct {
	ShortRangeDays int
	LongRangeDays  int
	FutureDays     string
	Status         domain.ProductStatus
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.ShortRangeDays == 0 {
		o.ShortRangeDays = DefaultShortRangeDays
	}
	if o.LongRangeDays == 0 {
		o.LongRangeDays = DefaultLongRangeDays
	}
	if o.FutureDays == "" {
		o.FutureDays = DefaultFutureDays
	}
	if o.Status == "" {
		o.Status = DefaultStatus
	}
	return o
}

// Orchestrator coordinates the upstream client, the cache, and the
// active session. All methods are safe for concurrent use.
type Orchestrator struct {
	client  upstream.Client
	cache   *cache.Store
	session session.Provider
	logger  *slog.Logger

	// rangeGen orders concurrent date-range fetches so a late response
	// for an older request never overwrites a newer overlay.
	rangeGen atomic.Int64
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// New creates an orchestrator around a client, cache, and session.
func New(client upstream.Client, store *cache.Store, sess session.Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:  client,
		cache:   store,
		session: sess,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetProducts returns the product list for the given options, serving
// from the cache when the requested parameter tuple matches the cached
// one. A cache hit never touches the loading flag or the network.
func (o *Orchestrator) GetProducts(ctx context.Context, opts FetchOptions) ([]domain.ProductRecord, error) {
	opts = opts.withDefaults()
	params := o.fetchParams(opts)

	if o.cache.ValidFor(params) {
		metrics.CacheHitsTotal.Inc()
		o.logger.Debug("serving products from cache",
			"store", params.StoreURL,
			"status", params.Status)
		return o.cache.Products(), nil
	}

	metrics.CacheMissesTotal.Inc()
	return o.fetch(ctx, params)
}

// RefreshProducts always fetches from the network, bypassing the cache
// check. On success the cache is replaced as usual.
func (o *Orchestrator) RefreshProducts(ctx context.Context, opts FetchOptions) ([]domain.ProductRecord, error) {
	opts = opts.withDefaults()
	return o.fetch(ctx, o.fetchParams(opts))
}

func (o *Orchestrator) fetchParams(opts FetchOptions) domain.FetchParams {
	return domain.FetchParams{
		ShortRangeDays: opts.ShortRangeDays,
		LongRangeDays:  opts.LongRangeDays,
		FutureDays:     opts.FutureDays,
		Status:         opts.Status,
		StoreURL:       o.session.StoreURL(),
	}
}

func (o *Orchestrator) fetch(ctx context.Context, params domain.FetchParams) ([]domain.ProductRecord, error) {
	o.cache.SetLoading(true)

	start := time.Now()
	records, err := o.client.Predictions(ctx, upstream.PredictionRequest{
		Store:          params.StoreURL,
		ShortRangeDays: params.ShortRangeDays,
		LongRangeDays:  params.LongRangeDays,
		FutureDays:     params.FutureDays,
		Status:         params.Status,
	})
	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// Stale-on-error: the previous list and params stay untouched.
		o.cache.SetLoading(false)
		metrics.FetchErrorsTotal.Inc()
		o.logger.Error("product fetch failed",
			"store", params.StoreURL,
			"error", err)
		return nil, fmt.Errorf("fetching products: %w", err)
	}

	o.cache.SetProducts(records, params)
	o.logger.Info("product cache refreshed",
		"store", params.StoreURL,
		"status", params.Status,
		"records", len(records))
	return records, nil
}

// ClearCache drops all cached results. Called on logout and store switch.
func (o *Orchestrator) ClearCache() {
	o.cache.Clear()
	o.logger.Info("product cache cleared")
}

// GetTotalProducts returns the product counts for the given status set,
// serving from the cache unless force is set or the cached params
// differ. Multi-status requests fan out concurrently and fail as a
// whole if any status fails.
func (o *Orchestrator) GetTotalProducts(
	ctx context.Context,
	statuses []domain.ProductStatus,
	force bool,
) (domain.TotalCount, error) {
	if len(statuses) == 0 {
		statuses = []domain.ProductStatus{DefaultStatus}
	}

	params := domain.TotalCountParams{
		StoreURL: o.session.StoreURL(),
		Statuses: statuses,
	}

	if !force && o.cache.TotalValidFor(params) {
		metrics.CacheHitsTotal.Inc()
		return *o.cache.TotalCount(), nil
	}
	metrics.CacheMissesTotal.Inc()

	if len(statuses) == 1 {
		count, err := o.client.TotalCount(ctx, params.StoreURL, statuses[0])
		if err != nil {
			return domain.TotalCount{}, fmt.Errorf("fetching total count: %w", err)
		}
		total := domain.TotalCount{Single: &count}
		o.cache.SetTotalCount(total, params)
		return total, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		byStatus = make(map[domain.ProductStatus]domain.Count, len(statuses))
		firstErr error
	)
	for _, status := range statuses {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := o.client.TotalCount(ctx, params.StoreURL, status)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("fetching total count for %s: %w", status, err)
				}
				return
			}
			byStatus[status] = count
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return domain.TotalCount{}, firstErr
	}

	total := domain.TotalCount{ByStatus: byStatus}
	o.cache.SetTotalCount(total, params)
	return total, nil
}

// GetProductsByDateRange fetches per-date-range projections and merges
// them onto the cached list. Reversed date ranges are swapped rather
// than rejected. When several range fetches race, only the most recent
// one's projections are applied.
func (o *Orchestrator) GetProductsByDateRange(
	ctx context.Context,
	start, end time.Time,
	futureDays string,
	status domain.ProductStatus,
) ([]domain.ProductRecord, error) {
	if start.After(end) {
		start, end = end, start
	}
	if futureDays == "" {
		futureDays = DefaultFutureDays
	}
	if status == "" {
		status = DefaultStatus
	}

	gen := o.rangeGen.Add(1)

	o.cache.SetLoading(true)
	projections, err := o.client.RangeProjections(ctx, upstream.RangeRequest{
		Store:      o.session.StoreURL(),
		StartDate:  formatStartDate(start),
		EndDate:    formatEndDate(end),
		FutureDays: futureDays,
		Status:     status,
	})
	o.cache.SetLoading(false)

	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		return nil, fmt.Errorf("fetching range projections: %w", err)
	}

	if o.rangeGen.Load() != gen {
		o.logger.Debug("discarding superseded range result")
		return o.cache.Products(), nil
	}

	updated := o.cache.OverlayRange(projections)
	o.logger.Info("range projections applied",
		"projections", len(projections),
		"updated", updated)
	return o.cache.Products(), nil
}

// ExportProducts posts the given records for CSV export and returns
// the backend's CSV stream. The caller must close it.
func (o *Orchestrator) ExportProducts(
	ctx context.Context,
	records []domain.ProductRecord,
) (io.ReadCloser, error) {
	stream, err := o.client.ExportCSV(ctx, upstream.ToExportRecords(records))
	if err != nil {
		return nil, fmt.Errorf("exporting products: %w", err)
	}
	o.logger.Info("product export requested", "records", len(records))
	return stream, nil
}

// Loading reports whether a fetch is in flight.
func (o *Orchestrator) Loading() bool {
	return o.cache.Loading()
}

// The backend's range endpoint expects the start of day as a full ISO
// timestamp and the end of day without a zone suffix.
func formatStartDate(t time.Time) string {
	return t.UTC().Format("2006-01-02") + "T00:00:00.000Z"
}

func formatEndDate(t time.Time) string {
	return t.UTC().Format("2006-01-02") + "T23:59:59"
}
