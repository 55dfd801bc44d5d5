package chart

import "github.com/greenzone-vis/greenzone/pkg/table"

// Criterion selects the value a category ranks its regions by.
type Criterion int

const (
	// CriterionTimeSafe ranks by time spent disease-free, best (longest) first.
	// Only the first category uses it.
	CriterionTimeSafe Criterion = iota
	// CriterionIncidence ranks by incidence, best (lowest) first.
	CriterionIncidence
)

// Category is one ordered severity bucket together with every per-category
// derived field. Keeping pool, ratio and display set on one record keeps the
// parallel data aligned by construction.
type Category struct {
	Index       int
	Label       string
	Description string
	Color       string

	// LowerBound is inclusive; UpperBound is the next category's lower bound
	// (exclusive), or max incidence + 1 for the last category.
	LowerBound float64
	UpperBound float64

	// UseSecondary selects the secondary incidence column for this category's
	// bound comparisons and sorting.
	UseSecondary bool

	Criterion Criterion

	// Pool is every table entry inside the category's bounds, after
	// tie-breaking. Disjoint from all other categories' pools.
	Pool []*table.Entry

	// Ratio is |Pool| / total row count.
	Ratio float64

	// Display is the bounded subset of Pool chosen for rendering, in display
	// order. Replaced wholesale by the selector, extended by search injection.
	Display []*table.Entry
}

// Incidence returns the entry's incidence under this category's source column.
func (c *Category) Incidence(e *table.Entry) float64 {
	if c.UseSecondary {
		return e.SecondaryIncidence
	}
	return e.PrimaryIncidence
}

// SortValue returns the value the category ranks e by.
func (c *Category) SortValue(e *table.Entry) float64 {
	if c.Criterion == CriterionTimeSafe {
		return e.TimeSafe
	}
	return c.Incidence(e)
}

// Unit returns the singular unit for the category's sort criterion.
func (c *Category) Unit(cfg *Config) string {
	if c.Criterion == CriterionTimeSafe {
		return cfg.TimeSafeUnit
	}
	return cfg.IncidenceUnit
}

// displayed reports whether e is already part of the display set.
func (c *Category) displayed(e *table.Entry) bool {
	for _, d := range c.Display {
		if d == e {
			return true
		}
	}
	return false
}
