// Package dnscache is a TTL-aware LRU cache of decoded answer records,
// keyed by the question that produced them.
package dnscache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/dnsq/internal/dns/common/clock"
	"github.com/haukened/dnsq/internal/dns/domain"
)

// entry pins a set of answers to a single expiry deadline: the shortest
// TTL in the set, so no record is ever served stale.
type entry struct {
	records   []domain.ResourceRecord
	expiresAt time.Time
}

// Cache stores decoded answers between lookups. A TTL of zero on any
// record marks the whole answer set uncacheable (RFC 1035 "do not cache").
type Cache struct {
	lru *lru.Cache[string, entry]
	clk clock.Clock
}

// New returns a Cache bounded to size entries.
func New(size int, clk clock.Clock) (*Cache, error) {
	backing, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: backing, clk: clk}, nil
}

// Put stores the answers for q. Empty answer sets and sets containing a
// zero-TTL record are not stored.
func (c *Cache) Put(q domain.Question, records []domain.ResourceRecord) {
	if len(records) == 0 {
		return
	}
	minTTL := records[0].TTL
	for _, rr := range records {
		if rr.TTL == 0 {
			return
		}
		if rr.TTL < minTTL {
			minTTL = rr.TTL
		}
	}
	c.lru.Add(q.CacheKey(), entry{
		records:   records,
		expiresAt: c.clk.Now().Add(time.Duration(minTTL) * time.Second),
	})
}

// Get returns the cached answers for q, evicting and missing if the
// entry has expired.
func (c *Cache) Get(q domain.Question) ([]domain.ResourceRecord, bool) {
	key := q.CacheKey()
	e, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if !c.clk.Now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.records, true
}

// Len returns the number of cached answer sets.
func (c *Cache) Len() int {
	return c.lru.Len()
}
