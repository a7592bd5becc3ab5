// Package cache holds the single-slot product cache and the validity
// policy that decides when cached results may be reused. The product
// orchestrator is the only writer; every other component reads.
package cache

import (
	"sync"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// Store is the in-memory product cache. It holds the last-fetched
// product list, a loading flag, the parameter tuple that produced the
// list, and a separately cached total-count result.
//
// Each successful fetch replaces products and params atomically; a
// failed fetch leaves both untouched (stale-on-error).
type Store struct {
	mu sync.RWMutex

	products []domain.ProductRecord
	loading  bool
	params   *domain.FetchParams

	total       *domain.TotalCount
	totalParams *domain.TotalCountParams
}

// New creates an empty cache store.
func New() *Store {
	return &Store{products: []domain.ProductRecord{}}
}

// Products returns the cached product list. The slice is the cache's
// backing array: a cache hit hands consumers the same slice a prior
// fetch produced.
func (s *Store) Products() []domain.ProductRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Params returns a copy of the parameter tuple behind the cached list,
// or nil when the cache has never been populated or was cleared.
func (s *Store) Params() *domain.FetchParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.params == nil {
		return nil
	}
	p := *s.params
	return &p
}

// LastStatus returns the status of the last populated fetch, or "" when
// the cache is empty. Consumers restore their status filter from it.
func (s *Store) LastStatus() domain.ProductStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.params == nil {
		return ""
	}
	return s.params.Status
}

// SetProducts replaces the cached list and its parameter tuple in one
// step and clears the loading flag.
func (s *Store) SetProducts(products []domain.ProductRecord, params domain.FetchParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.params = &params
	s.loading = false
}

// OverlayRange merges per-date-range projections onto the cached list,
// matching on (productId, variantId). Only TotalSales, SoldPerDay, and
// RecommendedRestock change; records with no matching projection keep
// their previous values. Returns the number of records updated.
func (s *Store) OverlayRange(projections []domain.RangeProjection) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey := make(map[domain.ProductKey]*domain.RangeProjection, len(projections))
	for i := range projections {
		p := &projections[i]
		byKey[domain.ProductKey{ProductID: p.ProductID, VariantID: p.VariantID}] = p
	}

	updated := 0
	for i := range s.products {
		rec := &s.products[i]
		proj, ok := byKey[rec.Key()]
		if !ok {
			continue
		}
		rec.TotalSales = proj.TotalSales
		rec.SoldPerDay = proj.SoldPerDay
		rec.RecommendedRestock = proj.RecommendedRestock
		updated++
	}
	return updated
}

// TotalCount returns the cached total-count result, or nil on a miss.
func (s *Store) TotalCount() *domain.TotalCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// SetTotalCount replaces the cached total-count result and its params.
func (s *Store) SetTotalCount(total domain.TotalCount, params domain.TotalCountParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = &total
	s.totalParams = &params
}

// Clear resets the cache to its initial empty state. Called on logout
// and session switch.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = []domain.ProductRecord{}
	s.params = nil
	s.loading = false
	s.total = nil
	s.totalParams = nil
}
