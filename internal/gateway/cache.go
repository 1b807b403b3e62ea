package gateway

import (
	"sync"
	"time"

	"taskpanel/internal/query"
	"taskpanel/internal/task"
)

// ResourceTasks tags every cached read of the task list.
const ResourceTasks = "tasks"

// Key identifies one cached read. Reads are keyed by the full view state so a
// filter or page change is a new request.
type Key struct {
	Resource string
	Page     int
	Status   task.StatusFilter
	Priority task.PriorityFilter
}

func KeyFor(s query.ViewState) Key {
	return Key{Resource: ResourceTasks, Page: s.Page, Status: s.Status, Priority: s.Priority}
}

type entry struct {
	val Result
	exp time.Time
}

// Cache is a short-lived read cache. Entries expire after ttl and every entry
// of a resource is dropped by Invalidate.
type Cache struct {
	mu    sync.RWMutex
	m     map[Key]entry
	ttl   time.Duration
	now   func() time.Time
	epoch uint64
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{m: make(map[Key]entry), ttl: ttl, now: time.Now}
}

func (c *Cache) Get(key Key) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || !c.now().Before(e.exp) {
		return Result{}, false
	}
	return e.val, true
}

func (c *Cache) Set(key Key, val Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{val: val, exp: c.now().Add(c.ttl)}
}

// Epoch changes on every Invalidate. A read started under one epoch must not
// be stored under another.
func (c *Cache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// SetIfCurrent stores val only when no Invalidate ran since epoch was read.
func (c *Cache) SetIfCurrent(key Key, val Result, epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.m[key] = entry{val: val, exp: c.now().Add(c.ttl)}
	return true
}

// Invalidate drops every entry tagged with resource and returns how many
// were removed.
func (c *Cache) Invalidate(resource string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	n := 0
	for k := range c.m {
		if k.Resource == resource {
			delete(c.m, k)
			n++
		}
	}
	return n
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
