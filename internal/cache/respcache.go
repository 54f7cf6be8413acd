package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/example/contract-explorer/internal/models"
	"github.com/example/contract-explorer/internal/query"
)

// ResponseCache is the server-side counterpart used by the mock backend:
// a TTL'd, cost-bounded cache of fully rendered pages keyed by the same
// canonical key the engine uses.
type ResponseCache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func NewResponseCache(maxCost int64, ttl time.Duration) (*ResponseCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &ResponseCache{c: c, ttl: ttl}, nil
}

func (r *ResponseCache) Get(key query.Key) (*models.Page, bool) {
	v, ok := r.c.Get(string(key))
	if !ok {
		return nil, false
	}
	page, ok := v.(*models.Page)
	return page, ok
}

func (r *ResponseCache) Set(key query.Key, page *models.Page) {
	r.c.SetWithTTL(string(key), page, 1, r.ttl)
}

func (r *ResponseCache) Del(key query.Key) { r.c.Del(string(key)) }
