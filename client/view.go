package client

import (
	"context"
	"sync"

	"aukra/models"
)

// View tracks the state a screen shows for one live key, such as the dish a
// detail page is displaying. A load for a key that stopped being live
// before it resolved never updates the view.
type View[T any] struct {
	load    func(ctx context.Context, key string) Result[T]
	refetch func(ctx context.Context, key string) Result[T]

	mu    sync.Mutex
	key   string
	seq   uint64
	state Result[T]
}

func NewView[T any](load, refetch func(ctx context.Context, key string) Result[T]) *View[T] {
	return &View[T]{load: load, refetch: refetch}
}

// DishView returns a view over single dishes keyed by dish id.
func (f *Fetcher) DishView() *View[*models.MenuItem] {
	return NewView(f.Dish, f.RefetchDish)
}

// MenuView returns a view over the whole menu; its key is ignored.
func (f *Fetcher) MenuView() *View[[]models.MenuSection] {
	return NewView(
		func(ctx context.Context, _ string) Result[[]models.MenuSection] { return f.Menu(ctx) },
		func(ctx context.Context, _ string) Result[[]models.MenuSection] { return f.RefetchMenu(ctx) },
	)
}

// Load makes key live and fetches it. It reports whether the result was
// applied to the view; false means another Load or Refetch superseded it.
func (v *View[T]) Load(ctx context.Context, key string) (Result[T], bool) {
	return v.run(ctx, key, v.load)
}

// Refetch reloads the live key, bypassing the cache.
func (v *View[T]) Refetch(ctx context.Context) (Result[T], bool) {
	v.mu.Lock()
	key := v.key
	v.mu.Unlock()
	return v.run(ctx, key, v.refetch)
}

// State returns the live key and the last applied result.
func (v *View[T]) State() (string, Result[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.key, v.state
}

func (v *View[T]) run(ctx context.Context, key string, fn func(context.Context, string) Result[T]) (Result[T], bool) {
	v.mu.Lock()
	v.key = key
	v.seq++
	seq := v.seq
	v.mu.Unlock()

	res := fn(ctx, key)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seq != seq {
		return res, false
	}
	v.state = res
	return res, true
}
