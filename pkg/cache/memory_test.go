package cache

import (
	"testing"
	"time"
)

var baseTime = time.Unix(1700000000, 0)

func TestMemoryTier_InsertAndLookup(t *testing.T) {
	m := newMemoryTier(10)

	m.insert("k1", memoryEntry{content: []byte("v1"), createdAt: baseTime}, baseTime)

	e, ok := m.lookup("k1")
	if !ok {
		t.Fatal("Expected k1 to be present")
	}
	if string(e.content) != "v1" {
		t.Errorf("Content = %q, want %q", e.content, "v1")
	}

	if _, ok := m.lookup("missing"); ok {
		t.Error("Lookup of absent key reported present")
	}
}

func TestMemoryTier_CapacityBound(t *testing.T) {
	m := newMemoryTier(3)

	for i, key := range []string{"a", "b", "c", "d", "e"} {
		at := baseTime.Add(time.Duration(i) * time.Second)
		m.insert(key, memoryEntry{content: []byte(key), createdAt: at}, at)
		if m.len() > 3 {
			t.Fatalf("Tier grew past capacity: %d entries", m.len())
		}
	}

	// Oldest-accessed entries were evicted in order.
	for _, key := range []string{"a", "b"} {
		if _, ok := m.lookup(key); ok {
			t.Errorf("Expected %s to have been evicted", key)
		}
	}
	for _, key := range []string{"c", "d", "e"} {
		if _, ok := m.lookup(key); !ok {
			t.Errorf("Expected %s to be resident", key)
		}
	}
}

func TestMemoryTier_TouchChangesVictim(t *testing.T) {
	m := newMemoryTier(2)

	m.insert("a", memoryEntry{content: []byte("a")}, baseTime)
	m.insert("b", memoryEntry{content: []byte("b")}, baseTime.Add(time.Second))

	// Touching "a" makes "b" the LRU entry.
	m.touch("a", baseTime.Add(2*time.Second))

	evicted := m.insert("c", memoryEntry{content: []byte("c")}, baseTime.Add(3*time.Second))
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("Evicted %v, want [b]", evicted)
	}
	if _, ok := m.lookup("a"); !ok {
		t.Error("Touched entry should have survived")
	}
}

func TestMemoryTier_EvictionTieBreak(t *testing.T) {
	m := newMemoryTier(2)

	// Same access timestamp; the smaller key must lose.
	m.insert("zebra", memoryEntry{content: []byte("z")}, baseTime)
	m.insert("apple", memoryEntry{content: []byte("a")}, baseTime)

	evicted := m.insert("mango", memoryEntry{content: []byte("m")}, baseTime.Add(time.Second))
	if len(evicted) != 1 || evicted[0] != "apple" {
		t.Errorf("Evicted %v, want [apple]", evicted)
	}
}

func TestMemoryTier_OverwriteDoesNotEvict(t *testing.T) {
	m := newMemoryTier(2)

	m.insert("a", memoryEntry{content: []byte("a1")}, baseTime)
	m.insert("b", memoryEntry{content: []byte("b1")}, baseTime.Add(time.Second))

	evicted := m.insert("a", memoryEntry{content: []byte("a2")}, baseTime.Add(2*time.Second))
	if len(evicted) != 0 {
		t.Errorf("Overwrite evicted %v, want nothing", evicted)
	}

	e, ok := m.lookup("a")
	if !ok || string(e.content) != "a2" {
		t.Errorf("Overwrite not visible: %q", e.content)
	}
	if m.len() != 2 {
		t.Errorf("len = %d, want 2", m.len())
	}
}

func TestMemoryTier_TouchAbsentKey(t *testing.T) {
	m := newMemoryTier(2)

	m.touch("ghost", baseTime)

	// The access map must not accumulate keys the value map lacks.
	if len(m.access) != 0 {
		t.Errorf("Touch of absent key left %d access entries", len(m.access))
	}
}

func TestMemoryTier_RemoveAndClear(t *testing.T) {
	m := newMemoryTier(4)

	m.insert("a", memoryEntry{content: []byte("a")}, baseTime)
	m.insert("b", memoryEntry{content: []byte("b")}, baseTime)

	m.remove("a")
	if _, ok := m.lookup("a"); ok {
		t.Error("Removed key still present")
	}
	if len(m.access) != 1 {
		t.Errorf("Access map has %d entries after remove, want 1", len(m.access))
	}

	m.clear()
	if m.len() != 0 || len(m.access) != 0 {
		t.Errorf("Clear left %d entries, %d access times", m.len(), len(m.access))
	}
}

func TestMemoryTier_EvictOneEmpty(t *testing.T) {
	m := newMemoryTier(1)
	if victim := m.evictOne(); victim != "" {
		t.Errorf("Eviction from empty tier returned %q", victim)
	}
}
