package chart

import (
	"math"
	"slices"
	"sort"

	"github.com/greenzone-vis/greenzone/pkg/table"
)

// displayCount returns how many of a category's regions are displayed: its
// proportional share of the total, floored, but never fewer than the
// configured minimum. The value is not capped at the pool size; callers slice
// with the pool length.
func (c *Category) displayCount(cfg *Config) int {
	count := int(math.Floor(float64(cfg.TotalDisplayRegions) * c.Ratio))
	if count < cfg.MinDisplayRegions {
		count = cfg.MinDisplayRegions
	}
	return count
}

// sortedPool returns the pool ordered by the category's criterion: time-safe
// count descending for the first category, incidence ascending otherwise.
// The sort is stable, so ties keep input table order.
func (c *Category) sortedPool() []*table.Entry {
	sorted := slices.Clone(c.Pool)
	ascending := c.Criterion == CriterionIncidence
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := c.SortValue(sorted[i]), c.SortValue(sorted[j])
		if ascending {
			return vi < vj
		}
		return vi > vj
	})
	return sorted
}

// buildDisplay replaces the category's display set with the best-ranked head
// of the pool. When the pool is larger than the display budget, the last
// selected row is swapped for the pool's worst row, a sentinel showing the
// tail of the distribution.
func (c *Category) buildDisplay(cfg *Config) {
	sorted := c.sortedPool()
	count := c.displayCount(cfg)

	head := min(count, len(sorted))
	c.Display = slices.Clone(sorted[:head])

	if len(sorted) > count {
		if len(c.Display) > 0 {
			c.Display = c.Display[:len(c.Display)-1]
		}
		c.Display = append(c.Display, sorted[len(sorted)-1])
	}
}
