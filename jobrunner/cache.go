package jobrunner

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arcward/cronexpr"
)

// ExpressionCache memoizes Parse by source text, so a registry of many
// jobs sharing the same schedule string (or repeatedly re-parsing the
// same job's expression across ticks) does not pay the parse cost
// every time.
type ExpressionCache struct {
	cache  *lru.Cache[string, *cronexpr.Expression]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewExpressionCache creates a cache holding up to size parsed
// expressions.
func NewExpressionCache(size int) (*ExpressionCache, error) {
	cache, err := lru.New[string, *cronexpr.Expression](size)
	if err != nil {
		return nil, err
	}
	return &ExpressionCache{cache: cache}, nil
}

// Parse returns a cached Expression for expr if present, otherwise
// parses, caches, and returns it.
func (c *ExpressionCache) Parse(expr string) (*cronexpr.Expression, error) {
	if cached, ok := c.cache.Get(expr); ok {
		c.hits.Add(1)
		return cached, nil
	}
	c.misses.Add(1)
	parsed, err := cronexpr.Parse(expr)
	if err != nil {
		return nil, err
	}
	c.cache.Add(expr, parsed)
	return parsed, nil
}

// Stats returns the cache's cumulative hit and miss counts.
func (c *ExpressionCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
