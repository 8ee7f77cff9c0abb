package recommend

import (
	"sync"
	"time"
)

/************************************************
/**** MARK: CACHE STATES ****/
/************************************************/

type cacheState int

const (
	stateAbsent cacheState = iota
	stateFresh
	stateStale
)

// CachePolicy define quando uma lista cacheada deixa de valer:
// por tempo de vida (TTL) e, opcionalmente, por número de usos.
// MaxUses <= 0 desliga o limite de usos.
type CachePolicy struct {
	TTL     time.Duration
	MaxUses int
}

type cacheEntry struct {
	ids        []int64
	insertedAt time.Time
	useCount   int
}

// recCache guarda, por usuário, os ids das linhas de Recommendation do
// último lote computado. A verdade mora no banco; o cache só decide entre
// FRESH (serve direto) e STALE/ABSENT (recomputa). Política de expiração
// isolada em CachePolicy pra ser testável sem o scoring junto.
type recCache struct {
	mu      sync.Mutex
	policy  CachePolicy
	entries map[int64]*cacheEntry
}

func newRecCache(policy CachePolicy) *recCache {
	return &recCache{
		policy:  policy,
		entries: make(map[int64]*cacheEntry),
	}
}

func (c *recCache) state(userID int64, now time.Time) cacheState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(userID, now)
}

func (c *recCache) stateLocked(userID int64, now time.Time) cacheState {
	e, ok := c.entries[userID]
	if !ok {
		return stateAbsent
	}
	if now.Sub(e.insertedAt) >= c.policy.TTL {
		return stateStale
	}
	if c.policy.MaxUses > 0 && e.useCount >= c.policy.MaxUses {
		return stateStale
	}
	return stateFresh
}

// get devolve os ids cacheados quando FRESH (e conta o uso); senão (nil, false).
func (c *recCache) get(userID int64, now time.Time) ([]int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stateLocked(userID, now) != stateFresh {
		return nil, false
	}
	e := c.entries[userID]
	e.useCount++
	ids := make([]int64, len(e.ids))
	copy(ids, e.ids)
	return ids, true
}

func (c *recCache) put(userID int64, ids []int64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]int64, len(ids))
	copy(stored, ids)
	c.entries[userID] = &cacheEntry{ids: stored, insertedAt: now}
}

func (c *recCache) invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
