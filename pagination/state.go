// Package pagination tracks where a paged list view stands: which page is
// showing, how many pages exist, and which page buttons to draw.
//
// Pages are 0-based everywhere inside the gateway. The 1-based numbers the
// storefront shows in URLs and buttons are produced only at the boundary
// (Window, PageParam).
package pagination

import "strconv"

// Meta is the slice of a PageResult the state cares about.
type Meta struct {
	Total       int
	TotalPages  int
	CurrentPage int
}

// State is the in-memory pagination record of one list view. It is created
// at view load and discarded with the view; nothing here persists.
type State struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int

	// pending is set while the view has optimistically jumped to a page
	// and is waiting for the server to confirm it. A confirming Update
	// must not yank the view back to the server-reported page.
	pending bool
}

func New(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &State{PageSize: pageSize, TotalPages: 1}
}

// TotalPagesFor derives the page count for a collection size. A collection
// always has at least one page, even when empty.
func TotalPagesFor(total, size int) int {
	if size <= 0 {
		return 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// SetPage optimistically navigates to page p. Returns false when p is the
// current page or out of range, in which case no fetch should be issued.
func (s *State) SetPage(p int) bool {
	if p == s.CurrentPage || p < 0 || p >= s.TotalPages {
		return false
	}
	s.CurrentPage = p
	s.pending = true
	return true
}

// Update applies a successful fetch response. The server's currentPage is
// adopted only when no optimistic navigation is pending; otherwise the
// response merely confirms the page the view already jumped to.
func (s *State) Update(meta Meta) {
	s.TotalItems = meta.Total
	s.TotalPages = TotalPagesFor(meta.Total, s.PageSize)
	if !s.pending {
		s.CurrentPage = meta.CurrentPage
	}
	s.pending = false
	if s.CurrentPage >= s.TotalPages {
		s.CurrentPage = s.TotalPages - 1
	}
	if s.CurrentPage < 0 {
		s.CurrentPage = 0
	}
}

// Reset returns the state to page zero of an empty collection. Called when
// the search term changes or a result set comes back empty.
func (s *State) Reset() {
	s.CurrentPage = 0
	s.TotalItems = 0
	s.TotalPages = 1
	s.pending = false
}

// Abandon clears a pending optimistic navigation after a failed fetch, so a
// retry confirms whatever page the view still shows.
func (s *State) Abandon() {
	s.pending = false
}

func (s *State) HasPrev() bool { return s.CurrentPage > 0 }
func (s *State) HasNext() bool { return s.CurrentPage < s.TotalPages-1 }

// PageParam is the value mirrored into the ?page= query parameter: 1-based,
// empty for the first page so the canonical URL stays clean.
func (s *State) PageParam() string {
	if s.CurrentPage <= 0 {
		return ""
	}
	return strconv.Itoa(s.CurrentPage + 1)
}

// Window returns the 1-based page numbers to draw as buttons: a contiguous
// run of at most maxVisible pages centered on the current one, shifted
// inward instead of running off either edge.
func (s *State) Window(maxVisible int) []int {
	if maxVisible <= 0 {
		maxVisible = 5
	}
	total := s.TotalPages
	if total <= maxVisible {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := s.CurrentPage + 1 - maxVisible/2
	if start < 1 {
		start = 1
	}
	if start+maxVisible-1 > total {
		start = total - maxVisible + 1
	}

	pages := make([]int, maxVisible)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
