package cache

import "fmt"

// counters accumulates hit/miss/eviction counts. Fields are mutated only
// while the Cache mutex is held; Stats snapshots are taken under the same
// lock, so readers always see a consistent view.
type counters struct {
	hits       uint64
	misses     uint64
	memoryHits uint64
	diskHits   uint64
	evictions  uint64
}

// Stats is a point-in-time snapshot of cache activity plus live tier sizes.
type Stats struct {
	MemoryEntries int     `json:"memory_entries"`
	DiskEntries   int     `json:"disk_entries"`
	TotalHits     uint64  `json:"total_hits"`
	TotalMisses   uint64  `json:"total_misses"`
	MemoryHits    uint64  `json:"memory_hits"`
	DiskHits      uint64  `json:"disk_hits"`
	HitRate       float64 `json:"hit_rate"`
	Evictions     uint64  `json:"evictions"`
}

// HitRatePercent formats the hit rate for display.
func (s Stats) HitRatePercent() string {
	return fmt.Sprintf("%.2f%%", s.HitRate)
}

// snapshot derives a Stats value from the counters. Tier sizes are filled in
// by the coordinator.
func (c counters) snapshot() Stats {
	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total) * 100
	}
	return Stats{
		TotalHits:   c.hits,
		TotalMisses: c.misses,
		MemoryHits:  c.memoryHits,
		DiskHits:    c.diskHits,
		HitRate:     rate,
		Evictions:   c.evictions,
	}
}
