// Package successrate turns a percentage chance into a bonus level where
// each level above the first is roughly half as likely as the one below.
package successrate

import (
	"math"
	"sync"

	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/logger"
)

// SegmentCache memoizes segment tables per max level. Safe for concurrent use.
type SegmentCache struct {
	mu       sync.RWMutex
	segments map[int][]int
}

// NewSegmentCache creates an empty cache.
func NewSegmentCache() *SegmentCache {
	return &SegmentCache{segments: make(map[int][]int)}
}

// Get returns the segment table for max, building it on first use. The
// returned slice is shared and must not be modified.
func (c *SegmentCache) Get(max int) []int {
	c.mu.RLock()
	segments, ok := c.segments[max]
	c.mu.RUnlock()
	if ok {
		return segments
	}

	segments = Segments(max)

	c.mu.Lock()
	if existing, ok := c.segments[max]; ok {
		segments = existing
	} else {
		c.segments[max] = segments
	}
	c.mu.Unlock()

	logger.Debugf("Built success segments for max %d (%d entries)", max, len(segments))
	return segments
}

// Len returns the number of cached tables.
func (c *SegmentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.segments)
}

// Segments builds the table for max: 2^max-1 entries where level 1 fills the
// first half, level 2 the next quarter, and level max appears once at the end.
func Segments(max int) []int {
	if max <= 0 {
		return nil
	}
	segments := make([]int, 0, (1<<max)-1)
	for level := 1; level <= max; level++ {
		for j := 0; j < 1<<(max-level); j++ {
			segments = append(segments, level)
		}
	}
	return segments
}

// Evaluator draws bonus levels.
type Evaluator struct {
	src   dice.Source
	cache *SegmentCache
}

// NewEvaluator creates an evaluator. A nil cache gets a private one.
func NewEvaluator(src dice.Source, cache *SegmentCache) *Evaluator {
	if src == nil {
		src = dice.NewSource()
	}
	if cache == nil {
		cache = NewSegmentCache()
	}
	return &Evaluator{src: src, cache: cache}
}

// Cache returns the evaluator's segment cache.
func (e *Evaluator) Cache() *SegmentCache {
	return e.cache
}

// Evaluate returns a level in [min, max]. The higher chancePercent is, the
// more likely the result climbs above min.
func (e *Evaluator) Evaluate(chancePercent, min, max int) int {
	if min >= max || chancePercent <= 0 || max <= 0 {
		return min
	}
	if chancePercent > 100 {
		chancePercent = 100
	}

	segments := e.cache.Get(max)

	shifted := e.src.Float64()*100 - float64(100-chancePercent)
	if shifted < 0 {
		return min
	}

	segmentSize := float64(chancePercent) / float64(len(segments))
	index := int(math.Floor(shifted / segmentSize))
	if index >= len(segments) {
		index = len(segments) - 1
	}

	if level := segments[index]; level > min {
		return level
	}
	return min
}
