package chart

import (
	"fmt"
	"math"
	"strconv"
)

// Branch line geometry: lines leave the box's right edge at x=1 and step
// right in fixed increments toward the label.
const (
	lineStartX = 1.0
	lineStepX  = 0.25
)

// LineEntry is one rendered unit: a 4-point horizontal/vertical polyline from
// the box edge to the label, the label itself, and the source row's display
// fields for tooltips. Entries are rebuilt on every layout pass and owned by
// the current render.
type LineEntry struct {
	X [4]float64
	Y [4]float64

	Color string

	TextX float64
	TextY float64
	Text  string

	Region   string
	Category string
	Postcode string

	TimeSafe           float64
	PrimaryIncidence   float64
	SecondaryIncidence float64

	// PercentChange is pre-formatted ("-25.0%") or empty when the dataset
	// has no percent-change column.
	PercentChange string
}

// Branched reports whether the entry's label was pushed off its line.
func (e *LineEntry) Branched() bool { return e.Y[1] != e.Y[2] }

// buildPlotData lays out every category's displayed rows as line and label
// positions, resolves branch collisions, and isolates the searched entry.
//
// Categories stack top-down from y=1, each occupying a band of height equal
// to its ratio. Zero-ratio categories are skipped entirely. Within a band,
// 10% padding is reserved on both sides and each row's criterion value is
// normalized across the displayed rows to position its line; labels are
// pulled down whenever they would crowd the previous label.
func (ch *Chart) buildPlotData() {
	boxTop := 1.0
	lastTextY := math.Inf(1)
	var lines []*LineEntry

	for _, c := range ch.categories {
		boxSize := c.Ratio
		if boxSize == 0 {
			continue
		}

		top, bot := displayedValueRange(c)
		padding := boxSize * 0.1

		for _, e := range c.Display {
			datum := c.SortValue(e)

			rel := 0.5
			if top != bot {
				rel = (datum - bot) / (top - bot)
			}
			lineY := boxTop - ((boxSize - padding*2) * rel) - padding

			textY := lineY
			if lastTextY-lineY < ch.cfg.MinSpaceY {
				textY = lastTextY - ch.cfg.MinSpaceY
			}
			lastTextY = textY

			ch.expandYRange(textY)

			entry := &LineEntry{
				X:     [4]float64{lineStartX, lineStartX + lineStepX, lineStartX + lineStepX, lineStartX + 2*lineStepX},
				Y:     [4]float64{lineY, lineY, textY, textY},
				Color: c.Color,
				TextX: lineStartX + 2*lineStepX,
				TextY: textY,
				Text:  fmt.Sprintf("%s: %s %s", e.Region, formatValue(datum), ch.unitFor(c, datum)),

				Region:           e.Region,
				Category:         c.Label,
				TimeSafe:         e.TimeSafe,
				PrimaryIncidence: e.PrimaryIncidence,
			}
			if ch.tbl.HasPostcode {
				entry.Postcode = e.Postcode
			}
			if ch.tbl.HasSecondaryIncidence {
				entry.SecondaryIncidence = e.SecondaryIncidence
			}
			if ch.tbl.HasPercentChange {
				entry.PercentChange = fmt.Sprintf("%.1f%%", e.PercentChange)
			}

			lines = append(lines, entry)
		}

		boxTop -= boxSize
	}

	items := make([]branchItem, len(lines))
	for i, e := range lines {
		items[i] = branchItem{x: &e.X, y: &e.Y, textX: &e.TextX}
	}
	resolveBranches(items, DirectionRight, ch.cfg.MinSpaceX)

	ch.lines = lines
	ch.searched = nil
	if ch.lastSearched == "" {
		return
	}

	// Isolate the searched entry into its own collection; the scan runs from
	// the end and removal is destructive.
	for i := len(lines) - 1; i >= 0; i-- {
		e := lines[i]
		if e.Region == ch.lastSearched || (e.Postcode != "" && e.Postcode == ch.lastSearched) {
			ch.searched = []*LineEntry{e}
			ch.lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
}

// displayedValueRange returns the max and min criterion values across the
// category's displayed rows.
func displayedValueRange(c *Category) (top, bot float64) {
	for i, e := range c.Display {
		v := c.SortValue(e)
		if i == 0 || v > top {
			top = v
		}
		if i == 0 || v < bot {
			bot = v
		}
	}
	return top, bot
}

// unitFor picks the singular or plural unit for a label's quantity.
func (ch *Chart) unitFor(c *Category, quantity float64) string {
	unit := c.Unit(&ch.cfg)
	if quantity == 1 {
		return unit
	}
	if unit == ch.cfg.TimeSafeUnit {
		return ch.cfg.TimeSafePluralUnit
	}
	return ch.cfg.IncidencePluralUnit
}

// formatValue renders a criterion value without a trailing ".0" for whole
// numbers; counts read as "12 cases", not "12.0 cases".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// expandYRange grows the viewport downward when a label would be clipped: the
// new lower bound places y at the bottom with padding equal to the viewport's
// original top padding. Re-checking an accommodated value is a no-op.
func (ch *Chart) expandYRange(y float64) {
	if y < ch.yRange.Min {
		ch.yRange.Min = y - (ch.yRange.Max - 1)
	}
}
