package models

// SortOrder is the timestamp ordering of the data table.
type SortOrder int

const (
	// SortNewest orders rows by timestamp, newest first.
	SortNewest SortOrder = iota
	// SortOldest orders rows by timestamp, oldest first.
	SortOldest
)

// String returns the display name for a sort order.
func (s SortOrder) String() string {
	if s == SortOldest {
		return "oldest first"
	}
	return "newest first"
}

// Toggle flips the sort order.
func (s SortOrder) Toggle() SortOrder {
	if s == SortOldest {
		return SortNewest
	}
	return SortOldest
}

// PageSizes are the selectable table page sizes.
var PageSizes = []int{10, 25, 50}

// DefaultPageSize is used when no valid page size is configured.
const DefaultPageSize = 10

// SnapPageSize returns the largest page size choice not above n,
// or the smallest choice when n is below all of them.
func SnapPageSize(n int) int {
	snapped := PageSizes[0]
	for _, size := range PageSizes {
		if n >= size {
			snapped = size
		}
	}
	return snapped
}

// NextPageSize cycles to the next page size choice.
func NextPageSize(n int) int {
	for i, size := range PageSizes {
		if size == n {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return DefaultPageSize
}

// TableQuery holds the search, sort and paging state of the data table.
// Page is 1-based.
type TableQuery struct {
	Search   string
	Order    SortOrder
	Page     int
	PageSize int
}

// NewTableQuery returns the first page of newest rows.
func NewTableQuery(pageSize int) TableQuery {
	return TableQuery{Order: SortNewest, Page: 1, PageSize: SnapPageSize(pageSize)}
}

// WithSearch sets the search term and resets to the first page.
func (q TableQuery) WithSearch(term string) TableQuery {
	if term != q.Search {
		q.Page = 1
	}
	q.Search = term
	return q
}

// WithOrder sets the sort order and resets to the first page.
func (q TableQuery) WithOrder(order SortOrder) TableQuery {
	if order != q.Order {
		q.Page = 1
	}
	q.Order = order
	return q
}

// WithPageSize sets the page size and resets to the first page.
func (q TableQuery) WithPageSize(size int) TableQuery {
	q.PageSize = SnapPageSize(size)
	q.Page = 1
	return q
}

// TablePage is one page of the sorted and searched rows.
type TablePage struct {
	Rows       []Row
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// HasPrev reports whether a previous page exists.
func (p TablePage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p TablePage) HasNext() bool { return p.Page < p.TotalPages }

// FirstIndex returns the 1-based position of the first row on the page,
// or 0 when the page is empty.
func (p TablePage) FirstIndex() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return (p.Page-1)*p.PageSize + 1
}

// LastIndex returns the 1-based position of the last row on the page.
func (p TablePage) LastIndex() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return p.FirstIndex() + len(p.Rows) - 1
}
