// Package client reads menu and restaurant data from the API with a shared
// cache, one request per key in flight, and bundled fallback data.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aukra/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	MenuKey       = "menu"
	RestaurantKey = "restaurant"

	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// DishKey is the cache key of one dish.
func DishKey(id string) string { return "dish:" + id }

// Source tells where the data of a Result came from.
type Source int

const (
	SourceNone Source = iota
	SourceLive
	SourceCache
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceCache:
		return "cache"
	case SourceFallback:
		return "fallback"
	}
	return "none"
}

// Result is what an accessor hands back. Data is the zero value when
// Source is SourceNone. A non-nil Err with SourceFallback means the data is
// degraded and the caller should offer a retry.
type Result[T any] struct {
	Data   T
	Err    error
	Source Source
}

// Degraded reports whether the result is not live or cached data.
func (r Result[T]) Degraded() bool { return r.Err != nil }

type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Fallback   Fallback
	Logger     *zap.SugaredLogger
}

// Fetcher is safe for concurrent use.
type Fetcher struct {
	baseURL  string
	hc       *http.Client
	timeout  time.Duration
	fallback Fallback
	log      *zap.SugaredLogger
	cache    *Cache
	group    singleflight.Group
}

// New returns a Fetcher reading from baseURL (for example
// "http://localhost:3003/api") and storing results in cache.
func New(baseURL string, cache *Cache, opts Options) *Fetcher {
	f := &Fetcher{
		baseURL:  strings.TrimRight(baseURL, "/"),
		hc:       opts.HTTPClient,
		timeout:  opts.Timeout,
		fallback: opts.Fallback,
		log:      opts.Logger,
		cache:    cache,
	}
	if f.hc == nil {
		f.hc = http.DefaultClient
	}
	if f.timeout <= 0 {
		f.timeout = DefaultTimeout
	}
	if f.fallback == nil {
		f.fallback = StaticFallback{}
	}
	if f.log == nil {
		f.log = zap.NewNop().Sugar()
	}
	return f
}

// Cache returns the cache the fetcher writes to.
func (f *Fetcher) Cache() *Cache { return f.cache }

type resource struct {
	key      string
	path     string
	notFound string
	decode   func(json.RawMessage) (any, error)
	fallback func() (any, bool)
}

type flightResult struct {
	entry Entry
}

func (f *Fetcher) Dish(ctx context.Context, id string) Result[*models.MenuItem] {
	return typed[*models.MenuItem](f.load(ctx, f.dishResource(id)))
}

func (f *Fetcher) RefetchDish(ctx context.Context, id string) Result[*models.MenuItem] {
	return typed[*models.MenuItem](f.refetch(ctx, f.dishResource(id)))
}

func (f *Fetcher) Menu(ctx context.Context) Result[[]models.MenuSection] {
	return typed[[]models.MenuSection](f.load(ctx, f.menuResource()))
}

func (f *Fetcher) RefetchMenu(ctx context.Context) Result[[]models.MenuSection] {
	return typed[[]models.MenuSection](f.refetch(ctx, f.menuResource()))
}

func (f *Fetcher) Restaurant(ctx context.Context) Result[*models.RestaurantInfo] {
	return typed[*models.RestaurantInfo](f.load(ctx, f.restaurantResource()))
}

func (f *Fetcher) RefetchRestaurant(ctx context.Context) Result[*models.RestaurantInfo] {
	return typed[*models.RestaurantInfo](f.refetch(ctx, f.restaurantResource()))
}

func (f *Fetcher) dishResource(id string) resource {
	return resource{
		key:      DishKey(id),
		path:     "/dishes/" + id,
		notFound: "dish not found",
		decode: func(raw json.RawMessage) (any, error) {
			if !isJSON(raw, '{') {
				return nil, errors.New("data is not an object")
			}
			var d models.MenuItem
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
			return &d, nil
		},
		fallback: func() (any, bool) {
			d, ok := f.fallback.Dish(id)
			if !ok || d == nil {
				return nil, false
			}
			return d, true
		},
	}
}

func (f *Fetcher) menuResource() resource {
	return resource{
		key:      MenuKey,
		path:     "/dishes",
		notFound: "menu not found",
		decode: func(raw json.RawMessage) (any, error) {
			if !isJSON(raw, '[') {
				return nil, errors.New("data is not an array")
			}
			var sections []models.MenuSection
			if err := json.Unmarshal(raw, &sections); err != nil {
				return nil, err
			}
			return sections, nil
		},
		fallback: func() (any, bool) {
			m, ok := f.fallback.Menu()
			if !ok || m == nil {
				return nil, false
			}
			return m, true
		},
	}
}

func (f *Fetcher) restaurantResource() resource {
	return resource{
		key:      RestaurantKey,
		path:     "/restaurant",
		notFound: "restaurant not found",
		decode: func(raw json.RawMessage) (any, error) {
			if !isJSON(raw, '{') {
				return nil, errors.New("data is not an object")
			}
			var r models.RestaurantInfo
			if err := json.Unmarshal(raw, &r); err != nil {
				return nil, err
			}
			return &r, nil
		},
		fallback: func() (any, bool) {
			r, ok := f.fallback.Restaurant()
			if !ok || r == nil {
				return nil, false
			}
			return r, true
		},
	}
}

// refetch drops the key's entry, abandons any flight in progress and loads
// again.
func (f *Fetcher) refetch(ctx context.Context, r resource) (any, Source, error) {
	f.cache.Invalidate(r.key)
	f.group.Forget(r.key)
	return f.load(ctx, r)
}

func (f *Fetcher) load(ctx context.Context, r resource) (any, Source, error) {
	for {
		if e, ok := f.cache.Get(r.key); ok && e.Value != nil {
			if e.Fallback {
				return e.Value, SourceFallback, e.Err
			}
			return e.Value, SourceCache, e.Err
		}

		ch := f.group.DoChan(r.key, func() (any, error) {
			return f.flight(r)
		})

		select {
		case <-ctx.Done():
			return nil, SourceNone, fmt.Errorf("%w: %w", ErrNetworkOrServer, ctx.Err())
		case res := <-ch:
			if errors.Is(res.Err, errSuperseded) {
				continue
			}
			if res.Err != nil {
				return nil, SourceNone, res.Err
			}
			e := res.Val.(flightResult).entry
			switch {
			case e.Err == nil:
				return e.Value, SourceLive, nil
			case e.Value != nil:
				return e.Value, SourceFallback, e.Err
			default:
				return nil, SourceNone, e.Err
			}
		}
	}
}

// flight performs the single outbound request for a key and commits its
// outcome unless the key was refetched meanwhile.
func (f *Fetcher) flight(r resource) (any, error) {
	version := f.cache.version(r.key)

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	val, err := f.get(ctx, r)
	entry := Entry{Value: val}
	if err != nil {
		entry = Entry{Err: err}
		if fb, ok := r.fallback(); ok {
			entry.Value = fb
			entry.Fallback = true
		}
		f.log.Warnw("fetch failed", "key", r.key, "fallback", entry.Fallback, "error", err)
	}

	if !f.cache.setAt(r.key, version, entry) {
		f.log.Debugw("discarding superseded fetch", "key", r.key)
		return nil, errSuperseded
	}
	return flightResult{entry: entry}, nil
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (f *Fetcher) get(ctx context.Context, r resource) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+r.path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkOrServer, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkOrServer, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetworkOrServer, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, r.notFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrNetworkOrServer, resp.StatusCode, env.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrNetworkOrServer, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: response has no data", ErrInvalidPayload)
	}
	val, err := r.decode(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return val, nil
}

func isJSON(raw json.RawMessage, first byte) bool {
	s := strings.TrimSpace(string(raw))
	return len(s) > 0 && s[0] == first
}

func typed[T any](v any, src Source, err error) Result[T] {
	r := Result[T]{Err: err, Source: src}
	if t, ok := v.(T); ok {
		r.Data = t
	}
	return r
}
