package cache

import (
	"context"
	"fmt"
	"moviehub/movie"
	"moviehub/pkg/metrics"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MovieSearchCache serves repeated searches from memory and delegates
// misses to the wrapped service.
type MovieSearchCache struct {
	next       movie.Service
	store      *gocache.Cache
	ttl        time.Duration
	maxEntries int
}

// NewMovieSearchCache wraps next. A ttl of zero or less disables caching;
// maxEntries of zero or less leaves the cache unbounded.
func NewMovieSearchCache(next movie.Service, ttl time.Duration, maxEntries int) *MovieSearchCache {
	c := &MovieSearchCache{next: next, ttl: ttl, maxEntries: maxEntries}
	if ttl > 0 {
		c.store = gocache.New(ttl, 2*ttl)
	}
	return c
}

func (c *MovieSearchCache) Search(ctx context.Context, q movie.SearchQuery) (movie.SearchResult, error) {
	if c.store == nil {
		return c.next.Search(ctx, q)
	}

	key := searchKey(q)
	if cached, found := c.store.Get(key); found {
		metrics.SearchCache.WithLabelValues("hit").Inc()
		return cached.(movie.SearchResult), nil
	}
	metrics.SearchCache.WithLabelValues("miss").Inc()

	result, err := c.next.Search(ctx, q)
	if err != nil {
		return movie.SearchResult{}, err
	}

	// When full, results are served but not stored until entries expire.
	if c.maxEntries <= 0 || c.store.ItemCount() < c.maxEntries {
		c.store.Set(key, result, c.ttl)
	}
	return result, nil
}

// Flush drops every cached result, e.g. after an import changed the store.
func (c *MovieSearchCache) Flush() {
	if c.store != nil {
		c.store.Flush()
	}
}

func searchKey(q movie.SearchQuery) string {
	return fmt.Sprintf("%s|%d|%d", q.Query, q.Page, q.Limit)
}
