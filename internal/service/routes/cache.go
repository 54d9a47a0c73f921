package routes

import (
	"sync"
	"time"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

// cacheKey is the query identity: a table is only reusable for the exact
// same distance, destination and catalog version.
type cacheKey struct {
	originIATA      string
	destinationIATA string
	destinationCity string
	distanceKM      int
	catalogVersion  string
}

type cacheEntry struct {
	table     *models.EvaluationTable
	expiresAt time.Time
}

// TableCache is a session-scoped cache of evaluation tables. The evaluator
// itself never caches; re-issuing a query against a non-deterministic oracle
// may legitimately produce different records, so reuse is a caller decision.
type TableCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[cacheKey]cacheEntry
	now     func() time.Time
}

// NewTableCache builds an empty cache whose entries live for ttl.
func NewTableCache(ttl time.Duration) *TableCache {
	return &TableCache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

func keyFor(q models.RouteQuery, catalogVersion string) cacheKey {
	return cacheKey{
		originIATA:      q.OriginIATA,
		destinationIATA: q.DestinationIATA,
		destinationCity: q.DestinationCity,
		distanceKM:      q.DistanceKM,
		catalogVersion:  catalogVersion,
	}
}

// Get returns the cached table for the query identity, if present and fresh.
func (c *TableCache) Get(q models.RouteQuery, catalogVersion string) (*models.EvaluationTable, bool) {
	key := keyFor(q, catalogVersion)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.table, true
}

// Put stores a freshly built table under its query identity.
func (c *TableCache) Put(q models.RouteQuery, catalogVersion string, table *models.EvaluationTable) {
	key := keyFor(q, catalogVersion)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{table: table, expiresAt: c.now().Add(c.ttl)}
}

// Sweep drops expired entries and reports how many were evicted.
func (c *TableCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live entries, expired or not.
func (c *TableCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
