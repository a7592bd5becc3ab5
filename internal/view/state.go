package view

import (
	"sync"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// SortState tracks the active sort column and direction. Clicking the
// same column cycles asc, desc, unsorted; a new column starts at asc.
type SortState struct {
	Column    string
	Direction Direction
}

// Next advances the state for a click on the given column and returns
// the new state.
func (s SortState) Next(column string) SortState {
	if column != s.Column {
		return SortState{Column: column, Direction: Asc}
	}
	switch s.Direction {
	case Asc:
		return SortState{Column: column, Direction: Desc}
	case Desc:
		return SortState{} // back to unsorted
	default:
		return SortState{Column: column, Direction: Asc}
	}
}

// State is the mutable view state of one dashboard session: the active
// filters, sort, and page. Mutators that change what the first page
// would contain reset the page to 1.
type State struct {
	mu     sync.Mutex
	params Params
}

// NewState creates a view state with default pagination.
func NewState() *State {
	return &State{params: Params{Page: 1, PageSize: defaultPageSize}}
}

// Params returns a snapshot of the current pipeline parameters.
func (s *State) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetSearch replaces the search term and resets to the first page.
func (s *State) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Search = term
	s.params.Page = 1
}

// SetUrgency replaces the urgency filter and resets to the first page.
func (s *State) SetUrgency(u domain.UrgencyLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Urgency = u
	s.params.Page = 1
}

// CycleSort advances the sort cycle for a column and resets to the
// first page.
func (s *State) CycleSort(column string) SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := SortState{Column: s.params.SortColumn, Direction: s.params.SortDirection}.Next(column)
	s.params.SortColumn = next.Column
	s.params.SortDirection = next.Direction
	s.params.Page = 1
	return next
}

// SetPage moves to the given page without touching filters or sort.
func (s *State) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.params.Page = page
}

// SetPageSize changes the page size and resets to the first page.
func (s *State) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size < 1 {
		size = defaultPageSize
	}
	s.params.PageSize = size
	s.params.Page = 1
}

// Reset returns the state to its defaults. Called on session switch.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = Params{Page: 1, PageSize: defaultPageSize}
}

// ExportSelection picks the record set for a CSV export: the filtered
// list when any filter is active, the full cached list otherwise.
// Pagination never applies to exports.
func ExportSelection(
	products []domain.ProductRecord,
	p Params,
	status domain.ProductStatus,
) []domain.ProductRecord {
	if !HasFilter(p, status) {
		return products
	}
	filtered := Filter(products, p.Urgency, p.Search)
	Sort(filtered, p.SortColumn, p.SortDirection)
	return filtered
}
