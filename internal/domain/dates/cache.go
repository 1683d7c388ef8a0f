package dates

import "sync"

// DefaultCapacity bounds the number of memoized date strings.
const DefaultCapacity = 1024

// Cache memoizes Parse by the literal input string.
//
// Entries never go stale, so eviction only costs a re-parse. When full,
// the oldest entry is dropped. Safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	store    map[string]Date
	order    []string
	next     int
	capacity int
}

// NewCache creates a cache holding at most capacity entries. A capacity
// of zero or less disables memoization.
func NewCache(capacity int) *Cache {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache{
		store:    make(map[string]Date, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Parse returns the Date for s, parsing it on a miss. Invalid strings are
// never cached.
func (c *Cache) Parse(s string) (Date, error) {
	if c == nil || c.capacity == 0 {
		return Parse(s)
	}

	c.mu.RLock()
	d, found := c.store[s]
	c.mu.RUnlock()
	if found {
		return d, nil
	}

	d, err := Parse(s)
	if err != nil {
		return Date{}, err
	}
	c.set(s, d)
	return d, nil
}

func (c *Cache) set(s string, d Date) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.store[s]; found {
		return
	}

	if len(c.order) < c.capacity {
		c.order = append(c.order, s)
	} else {
		delete(c.store, c.order[c.next])
		c.order[c.next] = s
		c.next = (c.next + 1) % c.capacity
	}
	c.store[s] = d
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.store)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]Date, c.capacity)
	c.order = c.order[:0]
	c.next = 0
}
