// Package pagination drives any server-paginated listing through a supplied
// fetch function. It holds the current page of items plus the server's page
// metadata; it never clamps the requested page, because the server is the
// source of truth and an out-of-range page simply comes back empty.
package pagination

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/model"
)

// FetchFunc loads one page. List operations on the resource clients satisfy
// this directly.
type FetchFunc[T any] func(ctx context.Context, page int) model.Page[T]

// Pager tracks one listing's position and contents.
type Pager[T any] struct {
	fetch   FetchFunc[T]
	loading atomic.Bool

	mu      sync.Mutex
	items   []T
	meta    model.Page[T]
	current int
}

// New constructs a pager positioned at initialPage and performs the initial
// fetch.
func New[T any](ctx context.Context, fetch FetchFunc[T], initialPage int) *Pager[T] {
	p := &Pager[T]{fetch: fetch, current: initialPage}
	p.load(ctx, initialPage)
	return p
}

// GoToPage requests page n. No range validation happens here.
func (p *Pager[T]) GoToPage(ctx context.Context, n int) {
	p.mu.Lock()
	p.current = n
	p.mu.Unlock()
	p.load(ctx, n)
}

// Refresh re-fetches the current page, keeping the navigation position after
// a mutation such as delete.
func (p *Pager[T]) Refresh(ctx context.Context) {
	p.mu.Lock()
	n := p.current
	p.mu.Unlock()
	p.load(ctx, n)
}

func (p *Pager[T]) load(ctx context.Context, page int) {
	p.loading.Store(true)
	defer p.loading.Store(false)

	res := p.fetch(ctx, page)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = res.Results
	p.meta = res
	if res.CurrentPage > 0 {
		p.current = res.CurrentPage
	} else {
		p.current = page
	}
}

// Items returns the current page's entities.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items
}

// Meta returns the last fetched page metadata.
func (p *Pager[T]) Meta() model.Page[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.meta
}

// CurrentPage returns the page the pager is positioned on.
func (p *Pager[T]) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Loading reports whether a fetch is in flight.
func (p *Pager[T]) Loading() bool { return p.loading.Load() }
