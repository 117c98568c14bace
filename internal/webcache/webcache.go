// Package webcache caches rendered pages per route. Listing pages are
// cached per full URL (path + query, so each search/page combination is
// its own entry) and invalidated per route after every mutation.
//
// The cache is in-process and best-effort: Invalidate marks a route stale
// synchronously, but there is no acknowledgment contract beyond that, and
// a cold entry is simply re-rendered on the next request.
package webcache

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

type entry struct {
	status    int
	header    http.Header
	body      []byte
	createdAt time.Time
}

// Cache is a per-route page cache. Only registered routes are cached —
// everything else passes straight through the middleware.
type Cache struct {
	ttl    time.Duration
	logger *slog.Logger

	mu     sync.RWMutex
	routes map[string]bool
	pages  map[string]map[string]entry // route → full URL → entry
}

// New creates a Cache. ttl <= 0 means entries never expire on their own
// and live until the route is invalidated.
func New(ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		ttl:    ttl,
		logger: logger,
		routes: make(map[string]bool),
		pages:  make(map[string]map[string]entry),
	}
}

// Register marks a route path as cacheable.
func (c *Cache) Register(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		c.routes[p] = true
	}
}

// Invalidate drops every cached variant of the given route path. Called by
// the action layer after each successful mutation.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	n := len(c.pages[path])
	delete(c.pages, path)
	c.mu.Unlock()

	if n > 0 {
		c.logger.Debug("page cache invalidated",
			slog.String("path", path),
			slog.Int("entries", n),
		)
	}
}

// Middleware serves registered GET routes from the cache and records cache
// misses. Only 200 responses are stored; error pages are never cached.
func (c *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !c.cacheable(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if e, ok := c.lookup(r.URL.Path, key); ok {
			copyHeader(w.Header(), e.header)
			w.WriteHeader(e.status)
			w.Write(e.body)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			c.store(r.URL.Path, key, entry{
				status:    rec.status,
				header:    w.Header().Clone(),
				body:      rec.buf.Bytes(),
				createdAt: time.Now(),
			})
		}
	})
}

func (c *Cache) cacheable(route string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.routes[route]
}

func (c *Cache) lookup(route, key string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.pages[route][key]
	if !ok {
		return entry{}, false
	}
	if c.ttl > 0 && time.Since(e.createdAt) > c.ttl {
		return entry{}, false
	}
	return e, true
}

func (c *Cache) store(route, key string, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pages[route] == nil {
		c.pages[route] = make(map[string]entry)
	}
	c.pages[route][key] = e
}

func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

// recorder tees the response into a buffer while it streams to the client,
// so a miss can be stored without a second render.
type recorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
