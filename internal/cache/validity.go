package cache

import (
	"slices"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// ValidFor reports whether the cached product list may be reused for
// the requested parameter tuple. It is false when the cache has never
// been populated, when any scalar of the tuple differs, or when the
// cached list is empty. A store URL mismatch always invalidates: a
// fetch for one store must never be served for another. The empty-list
// rule keeps a transient empty response from masquerading as a
// definitive "no products" answer.
func (s *Store) ValidFor(requested domain.FetchParams) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.params == nil {
		return false
	}
	if s.params.StoreURL != requested.StoreURL {
		return false
	}
	return *s.params == requested && len(s.products) > 0
}

// TotalValidFor reports whether the cached total-count result may be
// reused for the requested store and status set. Status sets compare as
// sets: order does not matter.
func (s *Store) TotalValidFor(requested domain.TotalCountParams) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.total == nil || s.totalParams == nil {
		return false
	}
	if s.totalParams.StoreURL != requested.StoreURL {
		return false
	}
	return StatusSetsEqual(s.totalParams.Statuses, requested.Statuses)
}

// StatusSetsEqual reports whether two status sets contain the same
// elements regardless of order.
func StatusSetsEqual(a, b []domain.ProductStatus) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
