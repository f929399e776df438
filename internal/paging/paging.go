package paging

import (
	"context"
	"sync"

	"jobradar/api-gateway/models"
)

// PageSize is the fixed catalog page size. The store is asked for exactly this
// window on every fetch.
const PageSize = 100

// Window is an offset-based slice of the total ordered record set plus the
// exact total count last reported by the store.
type Window struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
}

// PageCount derives the number of pages from the authoritative total.
func (w Window) PageCount() int {
	if w.TotalCount <= 0 {
		return 0
	}
	return int((w.TotalCount + int64(w.PageSize) - 1) / int64(w.PageSize))
}

// Offset is the zero-based index of the first record on the current page.
func (w Window) Offset() int {
	return (w.Page - 1) * w.PageSize
}

// Clamp returns a copy of the window with Page forced into [1, PageCount].
// A window with no known records clamps to page 1.
func (w Window) Clamp() Window {
	max := w.PageCount()
	if max < 1 {
		max = 1
	}
	if w.Page < 1 {
		w.Page = 1
	}
	if w.Page > max {
		w.Page = max
	}
	return w
}

// Navigation helpers. Each is a pure function of the current window, clamped,
// and a no-op at the boundary.

func (w Window) First() Window { w.Page = 1; return w.Clamp() }

func (w Window) Prev() Window { w.Page--; return w.Clamp() }

func (w Window) Next() Window { w.Page++; return w.Clamp() }

func (w Window) Last() Window { w.Page = w.PageCount(); return w.Clamp() }

func (w Window) GoTo(page int) Window { w.Page = page; return w.Clamp() }

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool { return w.Page > 1 }

// HasNext reports whether a further page exists.
func (w Window) HasNext() bool { return w.Page < w.PageCount() }

// ShowingFrom and ShowingTo are the one-based record ordinals rendered as
// "showing N-M of T".
func (w Window) ShowingFrom() int64 {
	if w.TotalCount == 0 {
		return 0
	}
	return int64(w.Offset()) + 1
}

func (w Window) ShowingTo() int64 {
	to := int64(w.Offset() + w.PageSize)
	if to > w.TotalCount {
		to = w.TotalCount
	}
	return to
}

// Fetcher is the bounded record-store query the coordinator depends on: one
// ordered window plus the exact total count in the same round trip.
type Fetcher interface {
	FetchPage(ctx context.Context, offset, limit int) ([]models.ScrapedJob, int64, error)
}

// Coordinator issues bounded fetches and tracks navigation state. On a failed
// fetch the previously displayed records and window are kept untouched; the
// error is surfaced to the caller, not retried. A later fetch supersedes an
// earlier in-flight one: whichever response commits last wins the shared
// state, and each caller still gets its own result.
type Coordinator struct {
	fetcher Fetcher

	mu      sync.Mutex
	window  Window
	records []models.ScrapedJob
}

// NewCoordinator returns a coordinator positioned on page 1 with no records
// fetched yet.
func NewCoordinator(fetcher Fetcher) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		window:  Window{Page: 1, PageSize: PageSize},
	}
}

// FetchPage clamps the requested page against the current window, fetches that
// window and adopts the store's count as the new authoritative total for all
// later navigation.
func (c *Coordinator) FetchPage(ctx context.Context, page int) ([]models.ScrapedJob, Window, error) {
	c.mu.Lock()
	next := c.window.GoTo(page)
	c.mu.Unlock()

	records, total, err := c.fetcher.FetchPage(ctx, next.Offset(), next.PageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// Previous page stays displayed; no partial overwrite.
		return c.records, c.window, err
	}

	next.TotalCount = total
	c.window = next
	c.records = records
	return c.records, c.window, nil
}

// Window returns the current navigation state.
func (c *Coordinator) Window() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// Records returns the last successfully fetched page.
func (c *Coordinator) Records() []models.ScrapedJob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records
}
