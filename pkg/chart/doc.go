// Package chart implements the green-zone ranking chart engine.
//
// The engine turns a flat table of regions plus configuration into a fully
// resolved set of line and label coordinates. The pipeline runs in stages:
//
//  1. Categorize: partition rows into ordered severity categories by
//     per-category incidence bounds, ties resolving to the better category.
//  2. Proportion: each category's share of the total row count drives both
//     its vertical band height and its display budget.
//  3. Select: pick a bounded, best-ranked subset of each pool for display,
//     keeping the pool's single worst row as a sentinel tail.
//  4. Layout: place each displayed row's line and label inside its category
//     band, pulling labels down to honor minimum spacing, then push
//     horizontally overlapping branch segments apart.
//  5. Expand: grow the viewport whenever a label would otherwise be clipped.
//
// Searching re-enters the pipeline at stage 3's output: the matched row is
// merged into its category's display set and stages 4-5 re-run. Resetting
// rebuilds the display sets from scratch.
//
// # Usage
//
//	tbl, err := table.ReadFile("regions.csv", table.DefaultKeys())
//	if err != nil {
//	    return err
//	}
//	ch, err := chart.New(tbl, cfg)
//	if err != nil {
//	    return err
//	}
//	ch.Search("2042")       // highlight a postcode
//	for _, e := range ch.Lines() {
//	    // hand off to a rendering sink
//	}
//
// The package is pure layout: rendering to SVG or other formats lives in
// [github.com/greenzone-vis/greenzone/pkg/chart/sink].
package chart
