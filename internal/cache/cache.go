// Package cache keeps computed rankings in memory between writes.
package cache

import (
	"roboscout/internal/config"
	"roboscout/internal/constants"
	"roboscout/internal/domain"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RankingCache stores ranking tables keyed by sort field. Any form write must
// call Invalidate so readers never see stale standings past it.
//
// Each Invalidate bumps a generation. A reader captures Generation before it
// queries the store and hands it to SetIfGeneration, which drops the rows if
// a write landed in between.
type RankingCache struct {
	mu         sync.Mutex
	generation uint64
	store      *gocache.Cache
}

func New(ttl, cleanupInterval time.Duration) *RankingCache {
	return &RankingCache{
		store: gocache.New(ttl, cleanupInterval),
	}
}

func NewFromConfig(cfg *config.Config) *RankingCache {
	return New(cfg.RankingCacheTTL, constants.RankingCacheCleanup)
}

// Get returns a copy of the cached rows.
func (c *RankingCache) Get(field string) ([]domain.RankingRow, bool) {
	v, ok := c.store.Get(field)
	if !ok {
		return nil, false
	}
	rows, ok := v.([]domain.RankingRow)
	if !ok {
		return nil, false
	}
	return append([]domain.RankingRow(nil), rows...), true
}

// Set stores a copy so later mutation by the caller cannot leak into the cache.
func (c *RankingCache) Set(field string, rows []domain.RankingRow) {
	c.store.Set(field, append([]domain.RankingRow(nil), rows...), gocache.DefaultExpiration)
}

func (c *RankingCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetIfGeneration stores rows only when no Invalidate happened since gen was
// read. It reports whether the rows were stored.
func (c *RankingCache) SetIfGeneration(field string, gen uint64, rows []domain.RankingRow) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.Set(field, rows)
	return true
}

func (c *RankingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.store.Flush()
}

func (c *RankingCache) ItemCount() int {
	return c.store.ItemCount()
}
