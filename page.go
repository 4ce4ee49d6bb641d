package cqrs

// Page is a slice of results plus the position of the slice in the full
// result set. List queries declare it as their result type.
type Page[T any] struct {
	Items     []T `json:"items"`
	Count     int `json:"count"`
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// NewPage builds the page at pageIndex (zero based) of a result set holding
// count items in total.
func NewPage[T any](items []T, count, pageIndex, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Count: count, PageIndex: pageIndex, PageSize: pageSize}
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := p.Count / p.PageSize
	if p.Count%p.PageSize != 0 {
		pages++
	}
	return pages
}

// PageNumber is the one based number of this page.
func (p Page[T]) PageNumber() int {
	return p.PageIndex + 1
}

func (p Page[T]) HasPrev() bool {
	return p.PageIndex > 0
}

func (p Page[T]) Prev() int {
	if p.HasPrev() {
		return p.PageNumber() - 1
	}
	return 0
}

func (p Page[T]) HasNext() bool {
	return p.PageIndex >= 0 && p.PageIndex < p.TotalPages()-1
}

func (p Page[T]) Next() int {
	if p.HasNext() {
		return p.PageNumber() + 1
	}
	return 0
}

// Bounds returns the [start, end) offsets of the page within a result set of
// count items, clamped to the set. A negative index counts as the first page.
func (p Page[T]) Bounds() (start, end int) {
	if p.PageSize <= 0 {
		return 0, 0
	}
	index := max(p.PageIndex, 0)
	if index >= p.TotalPages() {
		return p.Count, p.Count
	}
	start = index * p.PageSize
	end = min(start+p.PageSize, p.Count)
	return start, end
}
