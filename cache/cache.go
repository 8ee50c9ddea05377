// Package cache holds the bounded per-guild policy cache. The lookup map is
// safe for many concurrent readers and writers; the eviction order lives in
// its own LRU structure behind a single mutex and is kept in 1:1 key
// correspondence with the map.
package cache

import (
	"log"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"sanitizer-bot/models"
)

// DefaultCapacity bounds the number of guilds kept in memory.
const DefaultCapacity = 1000

// Store is the durable backing for guild policies.
type Store interface {
	GetServerConfig(guildID uint64) (models.GuildPolicy, error)
	SaveServerConfig(policy models.GuildPolicy) error
}

// ConfigCache is a read-through/write-through cache of guild policies.
type ConfigCache struct {
	store Store

	// OnHit and OnMiss, when set, observe every lookup. Set them before
	// the cache sees traffic.
	OnHit  func()
	OnMiss func()

	// entries maps guild id -> models.GuildPolicy.
	entries sync.Map
	// mu guards lru only. entries mutations that accompany an lru change
	// happen inside the same locked step.
	mu  sync.Mutex
	lru *simplelru.LRU[uint64, struct{}]
	// resettingOrder suppresses the eviction callback while the order
	// structure is purged during recovery; an order reset must never drop
	// cached data.
	resettingOrder bool
}

// New creates a cache over the given store. capacity <= 0 falls back to
// DefaultCapacity.
func New(store Store, capacity int) (*ConfigCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &ConfigCache{store: store}
	lru, err := simplelru.NewLRU[uint64, struct{}](capacity, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.lru = lru
	return c, nil
}

// onEvict deletes the map entry of every guild the LRU pushes out, keeping
// the 1:1 correspondence in the same locked step regardless of which code
// path triggered the eviction. It runs under mu, inside the lru call that
// evicted.
func (c *ConfigCache) onEvict(guildID uint64, _ struct{}) {
	if c.resettingOrder {
		return
	}
	c.entries.Delete(guildID)
	log.Printf("Evicted guild %d from config cache", guildID)
}

// GetOrFetch returns the guild's policy, loading it from the store on a
// miss. A failing store read degrades to the default policy instead of
// failing the event; the degraded value is not cached.
func (c *ConfigCache) GetOrFetch(guildID uint64) models.GuildPolicy {
	if v, ok := c.entries.Load(guildID); ok {
		if c.OnHit != nil {
			c.OnHit()
		}
		c.promote(guildID)
		return v.(models.GuildPolicy)
	}

	if c.OnMiss != nil {
		c.OnMiss()
	}
	policy, err := c.store.GetServerConfig(guildID)
	if err != nil {
		log.Printf("Policy load failed for guild %d, using defaults: %v", guildID, err)
		return models.DefaultGuildPolicy(guildID)
	}
	c.insert(guildID, policy)
	return policy
}

// Update persists the policy and replaces the cached entry. The cache keeps
// the new value even when the write fails, so the session stays consistent
// with what the administrator selected; the error is returned so the caller
// can tell them the change may not have persisted.
func (c *ConfigCache) Update(guildID uint64, policy models.GuildPolicy) error {
	err := c.store.SaveServerConfig(policy)
	c.insert(guildID, policy)
	return err
}

// Len reports the number of cached guilds.
func (c *ConfigCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// promote marks a guild as most recently used after a cache hit.
func (c *ConfigCache) promote(guildID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverEvictionOrder(guildID)

	if _, ok := c.lru.Get(guildID); !ok {
		// Heals the 1:1 correspondence after a prior order reset.
		c.lru.Add(guildID, struct{}{})
	}
}

// insert stores the entry and updates the eviction order. Adding at
// capacity evicts the least recently used guild through onEvict.
func (c *ConfigCache) insert(guildID uint64, policy models.GuildPolicy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverEvictionOrder(guildID)

	c.entries.Store(guildID, policy)
	if _, ok := c.lru.Get(guildID); !ok {
		c.lru.Add(guildID, struct{}{})
	}
}

// recoverEvictionOrder is the deferred recovery for a panic inside a
// critical section touching the LRU. It resets the order structure to a
// known-good state seeded with the entry being touched, leaving the data
// map untouched, rather than propagating the corruption.
func (c *ConfigCache) recoverEvictionOrder(guildID uint64) {
	r := recover()
	if r == nil {
		return
	}
	log.Printf("Eviction order corrupted (%v), resetting and reseeding with guild %d", r, guildID)
	c.resettingOrder = true
	c.lru.Purge()
	c.resettingOrder = false
	c.lru.Add(guildID, struct{}{})
}
