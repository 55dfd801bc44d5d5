package chart

import (
	"sort"
	"unicode"

	"github.com/greenzone-vis/greenzone/pkg/table"
)

// Search injects the queried region into its category's display set and
// re-runs the layout pass. A numeric query looks up postcodes, anything else
// region names. Categories are scanned in order and only the first match is
// injected; pools are disjoint, so at most one category can match. A query
// matching nothing, or matching a row already displayed, leaves the display
// sets unchanged. An empty query resets.
func (ch *Chart) Search(query string) {
	if query == "" {
		ch.Reset()
		return
	}

	ch.lastSearched = query
	byPostcode := isNumeric(query)

	for _, c := range ch.categories {
		match := findInPool(c, query, byPostcode)
		if match == nil || c.displayed(match) {
			continue
		}

		c.Display = append(c.Display, match)

		// Re-sort ascending iff the criterion is an incidence field; the
		// first category keeps its time-safe descending order.
		ascending := c.Criterion == CriterionIncidence
		sort.SliceStable(c.Display, func(i, j int) bool {
			vi, vj := c.SortValue(c.Display[i]), c.SortValue(c.Display[j])
			if ascending {
				return vi < vj
			}
			return vi > vj
		})
		break
	}

	ch.buildPlotData()
}

func findInPool(c *Category, query string, byPostcode bool) *table.Entry {
	for _, e := range c.Pool {
		if byPostcode {
			if e.Postcode == query {
				return e
			}
		} else if e.Region == query {
			return e
		}
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
