package catalog

import "strconv"

const (
	// DefaultPageSize is the number of languages per page.
	DefaultPageSize = 15

	// DefaultVisiblePages is the width of the page number window.
	DefaultVisiblePages = 5

	// CompactWidth is the viewport width below which navigation switches to
	// the compact policy.
	CompactWidth = 768

	// compactVisiblePages is the window width under the compact policy.
	compactVisiblePages = 2
)

// PageItem is one entry of the page number list: either a page number or
// an ellipsis marking skipped pages.
type PageItem struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// String renders the item as shown to the user.
func (p PageItem) String() string {
	if p.Ellipsis {
		return "..."
	}
	return strconv.Itoa(p.Number)
}

// Page is the visible slice of a result list plus its page number list.
// Start is the position of Items[0] in the full list.
type Page[T any] struct {
	Index      int
	TotalPages int
	Start      int
	Items      []T
	Numbers    []PageItem
}

// TotalPages returns ceil(n/pageSize), never less than 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage clamps page into [1, total]. Paginate does not clamp, so
// callers taking a page number from user input must call this first.
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Paginate computes page pageIndex of items.
//
// pageIndex is not clamped: an index outside [1, TotalPages] yields an
// empty Items slice. The number list is a window of visibleWindow pages
// centered on pageIndex, with the first and last page added at either end
// and an ellipsis wherever pages are skipped. For 10 pages, pageIndex 5 and
// window 5 it is [1 ... 3 4 5 6 7 ... 10].
func Paginate[T any](items []T, pageIndex, pageSize, visibleWindow int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(items), pageSize)

	page := Page[T]{
		Index:      pageIndex,
		TotalPages: total,
		Items:      []T{},
		Numbers:    PageNumbers(pageIndex, total, visibleWindow),
	}

	start := (pageIndex - 1) * pageSize
	if pageIndex >= 1 && start < len(items) {
		end := min(start+pageSize, len(items))
		page.Start = start
		page.Items = items[start:end:end]
	}
	return page
}

// PageNumbers returns the page number list for pageIndex out of total pages.
func PageNumbers(pageIndex, total, visibleWindow int) []PageItem {
	if visibleWindow < 1 {
		visibleWindow = 1
	}

	start := max(1, pageIndex-visibleWindow/2)
	end := min(total, start+visibleWindow-1)

	var numbers []PageItem
	if start > 1 {
		numbers = append(numbers, PageItem{Number: 1})
		if start > 2 {
			numbers = append(numbers, PageItem{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		numbers = append(numbers, PageItem{Number: p})
	}
	if end < total {
		if end < total-1 {
			numbers = append(numbers, PageItem{Ellipsis: true})
		}
		numbers = append(numbers, PageItem{Number: total})
	}
	return numbers
}

// NavPolicy is the responsive navigation policy for a viewport width.
type NavPolicy struct {
	VisiblePages int
	Compact      bool
	FirstLabel   string
	PrevLabel    string
	NextLabel    string
	LastLabel    string
}

// ViewportPolicy picks the navigation policy for a viewport width. Below
// compactWidth the window narrows to 2 pages and the controls use glyphs;
// otherwise defaultWindow and text labels are used. compactWidth <= 0
// disables the compact policy.
func ViewportPolicy(width, compactWidth, defaultWindow int) NavPolicy {
	if compactWidth > 0 && width < compactWidth {
		return NavPolicy{
			VisiblePages: compactVisiblePages,
			Compact:      true,
			FirstLabel:   "««",
			PrevLabel:    "«",
			NextLabel:    "»",
			LastLabel:    "»»",
		}
	}
	if defaultWindow < 1 {
		defaultWindow = DefaultVisiblePages
	}
	return NavPolicy{
		VisiblePages: defaultWindow,
		FirstLabel:   "First",
		PrevLabel:    "Previous",
		NextLabel:    "Next",
		LastLabel:    "Last",
	}
}

// NavControl is one of the first/previous/next/last buttons.
type NavControl struct {
	Label    string `json:"label"`
	Target   int    `json:"target"`
	Disabled bool   `json:"disabled"`
}

// NavControls returns the first, previous, next and last controls for page
// out of total. The first two are disabled on page 1, the last two on the
// last page.
func NavControls(page, total int, policy NavPolicy) [4]NavControl {
	atStart := page <= 1
	atEnd := page >= total
	return [4]NavControl{
		{Label: policy.FirstLabel, Target: 1, Disabled: atStart},
		{Label: policy.PrevLabel, Target: max(1, page-1), Disabled: atStart},
		{Label: policy.NextLabel, Target: min(total, page+1), Disabled: atEnd},
		{Label: policy.LastLabel, Target: total, Disabled: atEnd},
	}
}
