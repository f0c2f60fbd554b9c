// Package gallery holds the paginated browsing core: an immutable, ordered
// image collection and a cursor-based page navigator over it.
package gallery

// DefaultPageSize is the page length used when none is configured.
const DefaultPageSize = 10

// jumpFraction is the share of the collection a long jump moves by.
const jumpFraction = 0.05

// PageRange is a 1-based inclusive range for display. For an empty
// collection Last is 0, which renders as the degenerate range [1, 0].
type PageRange struct {
	First int
	Last  int
}

// Navigator is a pure cursor state machine over an ordered item list. The
// list is fixed at construction; every operation leaves the cursor pointing
// at an existing item (or 0 when there are none) and boundary operations
// are silent no-ops. Not safe for concurrent use; all mutation happens
// synchronously on the UI loop.
type Navigator struct {
	items    []string
	pageSize int
	cursor   int
}

// NewNavigator creates a navigator over items. The slice is copied so later
// mutation by the caller cannot break the cursor invariant. A pageSize < 1
// falls back to DefaultPageSize.
func NewNavigator(items []string, pageSize int) *Navigator {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	n := &Navigator{
		items:    append([]string(nil), items...),
		pageSize: pageSize,
	}
	return n
}

// Len returns the collection length
func (n *Navigator) Len() int { return len(n.items) }

// PageSize returns the fixed page length
func (n *Navigator) PageSize() int { return n.pageSize }

// Cursor returns the zero-based start offset of the current page
func (n *Navigator) Cursor() int { return n.cursor }

// CurrentPage returns up to pageSize items starting at the cursor, in
// collection order. The tail page may be shorter.
func (n *Navigator) CurrentPage() []string {
	end := n.cursor + n.pageSize
	if end > len(n.items) {
		end = len(n.items)
	}
	if n.cursor >= end {
		return nil
	}
	return n.items[n.cursor:end]
}

// Next advances by one full page length whenever items exist beyond the
// current page; the landing page may be partial. At the tail it is a no-op.
func (n *Navigator) Next() {
	if n.cursor+n.pageSize < len(n.items) {
		n.cursor += n.pageSize
	}
}

// Previous moves back by one full page, or not at all
func (n *Navigator) Previous() {
	if n.cursor-n.pageSize >= 0 {
		n.cursor -= n.pageSize
	}
}

// JumpForward moves ahead by 5% of the collection (at least one item),
// clamped so the cursor can land on a partial trailing page.
func (n *Navigator) JumpForward() {
	n.cursor += n.jumpDelta()
	if max := n.maxCursor(); n.cursor > max {
		n.cursor = max
	}
}

// JumpBackward moves back by 5% of the collection (at least one item)
func (n *Navigator) JumpBackward() {
	n.cursor -= n.jumpDelta()
	if n.cursor < 0 {
		n.cursor = 0
	}
}

// JumpToStart resets the cursor to the first page
func (n *Navigator) JumpToStart() {
	n.cursor = 0
}

// JumpToEnd moves to the last full window, which may start on a partial
// trailing page boundary.
func (n *Navigator) JumpToEnd() {
	n.cursor = n.maxCursor()
}

// PositionSummary returns the 1-based display range of the current page and
// the cursor position as a whole percentage of the collection.
func (n *Navigator) PositionSummary() (PageRange, int) {
	last := n.cursor + n.pageSize
	if last > len(n.items) {
		last = len(n.items)
	}
	r := PageRange{First: n.cursor + 1, Last: last}

	denom := len(n.items)
	if denom < 1 {
		denom = 1
	}
	percent := n.cursor * 100 / denom

	return r, percent
}

func (n *Navigator) jumpDelta() int {
	delta := int(float64(len(n.items)) * jumpFraction)
	if delta < 1 {
		delta = 1
	}
	return delta
}

func (n *Navigator) maxCursor() int {
	max := len(n.items) - n.pageSize
	if max < 0 {
		max = 0
	}
	return max
}
