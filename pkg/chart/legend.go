package chart

import (
	"fmt"
	"math"
)

// Legend branch geometry: small categories push their label off to the left
// of the box, mirroring the chart's rightward branches.
const (
	legendTextX = -1.5
	// legendLabelLines is how many text lines a legend label occupies; the
	// minimum spacing scales with it.
	legendLabelLines = 2
)

// LegendEntry describes one category's box and label in the category legend.
// Zero-ratio categories contribute a placeholder so the legend stays aligned
// with the category list without rendering anything.
type LegendEntry struct {
	Placeholder bool

	BoxTop float64
	Color  string
	Label  string
	// Percent is the category's share of all regions, pre-formatted ("40.0%").
	Percent string

	TextX float64
	TextY float64

	// Offset marks a small category whose label is branched off to the left;
	// X and Y then hold the connecting polyline.
	Offset bool
	X      [4]float64
	Y      [4]float64
}

// buildLegend computes the category boxes and their labels. Large categories
// carry their label centered inside the box; categories shorter than 2.5x the
// minimum label spacing branch the label out to the left instead, with the
// same crowding and collision rules as the chart labels.
func (ch *Chart) buildLegend() {
	boxTop := 1.0
	lastTextY := math.Inf(1)
	entries := make([]*LegendEntry, 0, len(ch.categories))

	for _, c := range ch.categories {
		boxSize := c.Ratio
		if boxSize == 0 {
			entries = append(entries, &LegendEntry{Placeholder: true})
			continue
		}

		boxMiddle := boxTop - boxSize/2
		e := &LegendEntry{
			BoxTop:  boxTop,
			Color:   c.Color,
			Label:   c.Label,
			Percent: fmt.Sprintf("%.1f%%", boxSize*100),
			TextY:   boxMiddle,
		}

		if boxSize >= ch.cfg.MinSpaceY*2.5 {
			// Large enough: label sits in the center of the box.
			e.TextX = 0
		} else {
			// The label is two lines tall, so crowding checks scale by that.
			if (lastTextY-boxMiddle)/legendLabelLines < ch.cfg.MinSpaceY {
				e.TextY = lastTextY - ch.cfg.MinSpaceY*legendLabelLines
			}
			e.TextX = legendTextX
			e.Offset = true
			e.X = [4]float64{-1.475, -1.25, -1.25, -1}
			e.Y = [4]float64{e.TextY, e.TextY, boxMiddle, boxMiddle}
		}

		lastTextY = e.TextY
		boxTop -= boxSize

		ch.expandYRange(lastTextY)
		entries = append(entries, e)
	}

	items := make([]branchItem, len(entries))
	for i, e := range entries {
		if e.Placeholder || !e.Offset {
			continue
		}
		items[i] = branchItem{x: &e.X, y: &e.Y, textX: &e.TextX}
	}
	resolveBranches(items, DirectionLeft, ch.cfg.MinSpaceX)

	ch.legend = entries
}
