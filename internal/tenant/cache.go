package tenant

import (
	"container/list"
	"sync"
	"time"
)

// lruCache is a thread-safe LRU of resolved tenants with a per-entry TTL.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	entries  map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	uid     string
	tenant  Tenant
	expires time.Time
}

func newLRUCache(capacity int, ttl time.Duration) *lruCache {
	return &lruCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// get returns the cached tenant for uid if present and not expired.
func (c *lruCache) get(uid string) (Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[uid]
	if !ok {
		return Tenant{}, false
	}

	entry := elem.Value.(*cacheEntry)
	if !c.now().Before(entry.expires) {
		c.order.Remove(elem)
		delete(c.entries, uid)
		return Tenant{}, false
	}

	c.order.MoveToFront(elem)
	return entry.tenant, true
}

// put stores t, evicting the least recently used entry when full.
func (c *lruCache) put(t Tenant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if elem, ok := c.entries[t.UID]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.tenant = t
		entry.expires = expires
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.entries, oldest.Value.(*cacheEntry).uid)
			c.order.Remove(oldest)
		}
	}

	c.entries[t.UID] = c.order.PushFront(&cacheEntry{uid: t.UID, tenant: t, expires: expires})
}

func (c *lruCache) remove(uid string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[uid]; ok {
		c.order.Remove(elem)
		delete(c.entries, uid)
	}
}
