package chart

import (
	"github.com/greenzone-vis/greenzone/pkg/errors"
	"github.com/greenzone-vis/greenzone/pkg/table"
)

// categorize partitions the table into one pool per category and computes the
// category ratios. The config must already be validated and defaulted.
//
// Bounds: category i captures entries with lower[i] <= incidence < lower[i+1].
// The final bound is synthesized as max(primary incidence)+1 so the last
// category is closed on the dataset's worst value. When two adjacent bounds
// are equal (a zero-width bucket, e.g. a second zero-incidence tier), the
// bucket still captures exact matches of that bound; the later tie-break pass
// hands shared entries to the lower-indexed, stricter category.
func categorize(tbl *table.Table, cfg *Config) ([]*Category, error) {
	if tbl.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTable, "input table has no rows")
	}

	n := len(cfg.Labels)
	bounds := make([]float64, n+1)
	copy(bounds, cfg.LowerBounds)
	bounds[n] = tbl.MaxPrimaryIncidence() + 1

	cats := make([]*Category, n)
	for i := range cats {
		c := &Category{
			Index:        i,
			Label:        cfg.Labels[i],
			Description:  cfg.Descriptions[i],
			Color:        cfg.Colors[i],
			LowerBound:   bounds[i],
			UpperBound:   bounds[i+1],
			UseSecondary: cfg.CalcWithSecondaryIncidence[i],
			Criterion:    CriterionIncidence,
		}
		if i == 0 {
			c.Criterion = CriterionTimeSafe
		}

		for _, e := range tbl.Entries {
			v := c.Incidence(e)
			inRange := v >= c.LowerBound && v < c.UpperBound
			// Zero-width bucket: capture exact matches of the shared bound.
			zeroWidth := c.LowerBound == c.UpperBound && v == c.UpperBound
			if inRange || zeroWidth {
				c.Pool = append(c.Pool, e)
			}
		}

		cats[i] = c
	}

	// Resolve overlaps from the last category backward to the second: an
	// entry claimed by pool i-1 is removed from pool i, so the lower-indexed
	// (better) category wins ties.
	for i := n - 1; i >= 1; i-- {
		claimed := make(map[*table.Entry]struct{}, len(cats[i-1].Pool))
		for _, e := range cats[i-1].Pool {
			claimed[e] = struct{}{}
		}
		kept := cats[i].Pool[:0]
		for _, e := range cats[i].Pool {
			if _, ok := claimed[e]; !ok {
				kept = append(kept, e)
			}
		}
		cats[i].Pool = kept
	}

	total := float64(tbl.Len())
	for _, c := range cats {
		c.Ratio = float64(len(c.Pool)) / total
	}

	return cats, nil
}
