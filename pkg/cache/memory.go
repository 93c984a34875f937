package cache

import "time"

// memoryEntry is the in-process representation of a cached value.
type memoryEntry struct {
	content   []byte
	createdAt time.Time
}

// memoryTier is the bounded in-process tier with least-recently-used
// eviction. It does no locking of its own; the Cache mutex covers all
// access. The value map and the access-time map always hold the same keys.
type memoryTier struct {
	capacity int
	entries  map[string]memoryEntry
	access   map[string]time.Time
}

func newMemoryTier(capacity int) *memoryTier {
	return &memoryTier{
		capacity: capacity,
		entries:  make(map[string]memoryEntry),
		access:   make(map[string]time.Time),
	}
}

// lookup returns the entry for key, if present. It does not touch the key;
// the caller decides whether the access counts (an expired hit does not).
func (m *memoryTier) lookup(key string) (memoryEntry, bool) {
	e, ok := m.entries[key]
	return e, ok
}

// touch records an access to key for eviction ordering.
func (m *memoryTier) touch(key string, now time.Time) {
	if _, ok := m.entries[key]; ok {
		m.access[key] = now
	}
}

// insert stores an entry, evicting least-recently-used entries first when a
// new key would exceed capacity. Overwriting an existing key never evicts.
// The evicted keys are returned so the caller can account for them.
func (m *memoryTier) insert(key string, e memoryEntry, now time.Time) []string {
	var evicted []string
	if _, exists := m.entries[key]; !exists {
		for len(m.entries) >= m.capacity {
			victim := m.evictOne()
			if victim == "" {
				break
			}
			evicted = append(evicted, victim)
		}
	}
	m.entries[key] = e
	m.access[key] = now
	return evicted
}

// evictOne removes the entry with the oldest access time and returns its
// key. Ties on the access time (possible at coarse clock resolution) are
// broken by the lexicographically smallest key so eviction order is
// reproducible.
func (m *memoryTier) evictOne() string {
	var victim string
	var oldest time.Time
	for key, at := range m.access {
		if victim == "" || at.Before(oldest) || (at.Equal(oldest) && key < victim) {
			victim = key
			oldest = at
		}
	}
	if victim == "" {
		return ""
	}
	delete(m.entries, victim)
	delete(m.access, victim)
	return victim
}

// remove deletes key from both maps.
func (m *memoryTier) remove(key string) {
	delete(m.entries, key)
	delete(m.access, key)
}

// clear empties the tier.
func (m *memoryTier) clear() {
	m.entries = make(map[string]memoryEntry)
	m.access = make(map[string]time.Time)
}

// len returns the number of resident entries.
func (m *memoryTier) len() int {
	return len(m.entries)
}

// keys returns the resident fingerprints (test helper).
func (m *memoryTier) keys() []string {
	out := make([]string, 0, len(m.entries))
	for key := range m.entries {
		out = append(out, key)
	}
	return out
}
