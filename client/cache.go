package client

import "sync"

// Entry is the cached state of one key. Value is nil while nothing
// displayable is known. Err is the error of the last fetch, kept alongside
// fallback data so callers can still offer a retry.
type Entry struct {
	Value    any
	Err      error
	Fallback bool
}

// Cache holds fetched values by key for the lifetime of a session. Create
// one with NewCache and share it by reference.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]Entry
	versions map[string]uint64
	subs     map[string]map[uint64]func(Entry, bool)
	nextSub  uint64
}

func NewCache() *Cache {
	return &Cache{
		entries:  make(map[string]Entry),
		versions: make(map[string]uint64),
		subs:     make(map[string]map[uint64]func(Entry, bool)),
	}
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Set stores e under key. A manual Set supersedes any fetch in flight for
// the key.
func (c *Cache) Set(key string, e Entry) {
	c.mu.Lock()
	c.entries[key] = e
	c.versions[key]++
	subs := c.subscribersLocked(key)
	c.mu.Unlock()

	notify(subs, e, true)
}

// Invalidate drops the entry for key and supersedes any fetch in flight.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.versions[key]++
	subs := c.subscribersLocked(key)
	c.mu.Unlock()

	notify(subs, Entry{}, false)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.Unlock()

	for _, k := range keys {
		c.Invalidate(k)
	}
}

// Subscribe calls fn after every change of key: with the new entry on a set,
// with ok=false on invalidation. fn runs on the goroutine that made the
// change and must not call back into a Fetcher. The returned func
// unsubscribes.
func (c *Cache) Subscribe(key string, fn func(e Entry, ok bool)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	id := c.nextSub
	if c.subs[key] == nil {
		c.subs[key] = make(map[uint64]func(Entry, bool))
	}
	c.subs[key][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[key], id)
		if len(c.subs[key]) == 0 {
			delete(c.subs, key)
		}
	}
}

func (c *Cache) version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key]
}

// setAt stores e only if key has not been set or invalidated since version
// was read.
func (c *Cache) setAt(key string, version uint64, e Entry) bool {
	c.mu.Lock()
	if c.versions[key] != version {
		c.mu.Unlock()
		return false
	}
	c.entries[key] = e
	subs := c.subscribersLocked(key)
	c.mu.Unlock()

	notify(subs, e, true)
	return true
}

func (c *Cache) subscribersLocked(key string) []func(Entry, bool) {
	subs := make([]func(Entry, bool), 0, len(c.subs[key]))
	for _, fn := range c.subs[key] {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Entry, bool), e Entry, ok bool) {
	for _, fn := range subs {
		fn(e, ok)
	}
}
