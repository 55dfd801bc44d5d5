package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/greenzone-vis/greenzone/pkg/table"
)

func singleZoneConfig() Config {
	return Config{
		Labels:       []string{"Green Zone"},
		Descriptions: []string{"No new cases"},
		Colors:       []string{"#2e7d32"},
		LowerBounds:  []float64{0},
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestPlotLinePlacement(t *testing.T) {
	tbl := &table.Table{
		HasTimeSafe: true,
		Entries: []*table.Entry{
			{Region: "Best", TimeSafe: 10},
			{Region: "Middle", TimeSafe: 5},
			{Region: "Worst", TimeSafe: 0},
		},
	}
	ch, err := New(tbl, singleZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	lines := ch.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	// One category fills the whole unit box; 10% padding on each side leaves
	// 0.8 for the value spread, best at the top.
	approx(t, "best lineY", lines[0].Y[0], 0.1)
	approx(t, "middle lineY", lines[1].Y[0], 0.5)
	approx(t, "worst lineY", lines[2].Y[0], 0.9)
}

func TestPlotLabelPullDown(t *testing.T) {
	tbl := &table.Table{
		HasTimeSafe: true,
		Entries: []*table.Entry{
			{Region: "Best", TimeSafe: 10},
			{Region: "Middle", TimeSafe: 5},
			{Region: "Worst", TimeSafe: 0},
		},
	}
	ch, err := New(tbl, singleZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	lines := ch.Lines()

	// The best label keeps its line position. Lines below sit lower than the
	// running label cursor, so each label is pulled down one spacing step.
	approx(t, "best textY", lines[0].TextY, 0.1)
	approx(t, "middle textY", lines[1].TextY, 0.1-DefaultMinSpaceY)
	approx(t, "worst textY", lines[2].TextY, 0.1-2*DefaultMinSpaceY)

	if lines[0].Branched() {
		t.Errorf("best entry should not branch")
	}
	if !lines[1].Branched() || !lines[2].Branched() {
		t.Errorf("pulled-down entries should branch")
	}

	// Consecutive branches stack rightward; the unbranched entry above the
	// run gets the final shift before the counter resets.
	approx(t, "worst textX", lines[2].TextX, 1.5)
	approx(t, "middle textX", lines[1].TextX, 1.5+DefaultMinSpaceX)
	approx(t, "best textX", lines[0].TextX, 1.5+2*DefaultMinSpaceX)
}

func TestPlotEqualValuesCenter(t *testing.T) {
	tbl := &table.Table{
		HasTimeSafe: true,
		Entries: []*table.Entry{
			{Region: "A", TimeSafe: 7},
			{Region: "B", TimeSafe: 7},
		},
	}
	ch, err := New(tbl, singleZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	// All displayed values equal: every line sits at the band midpoint.
	for i, e := range ch.Lines() {
		approx(t, "lineY", e.Y[0], 0.5)
		if i > 0 && !e.Branched() {
			t.Errorf("stacked equal entries below the first must branch")
		}
	}
}

func TestPlotBandsStackByRatio(t *testing.T) {
	ch, err := New(hundredRegionTable(), threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	// Ratios [0.4, 0.3, 0.3] stack top-down from y=1: green band (0.6, 1],
	// yellow (0.3, 0.6], red [0, 0.3]. Every line stays inside its band.
	bands := map[string][2]float64{
		"Green Zone":  {0.6, 1},
		"Yellow Zone": {0.3, 0.6},
		"Red Zone":    {0, 0.3},
	}
	for _, e := range ch.Lines() {
		b, ok := bands[e.Category]
		if !ok {
			t.Fatalf("unknown category %q", e.Category)
		}
		if e.Y[0] < b[0] || e.Y[0] > b[1] {
			t.Errorf("%s line at y=%v outside band [%v, %v] (%s)", e.Category, e.Y[0], b[0], b[1], e.Region)
		}
	}
}

func TestPlotLabelText(t *testing.T) {
	tbl := &table.Table{
		HasTimeSafe: true,
		Entries: []*table.Entry{
			{Region: "Streak", TimeSafe: 10},
			{Region: "Fresh", TimeSafe: 1},
		},
	}
	ch, err := New(tbl, singleZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	lines := ch.Lines()

	if got := lines[0].Text; got != "Streak: 10 days" {
		t.Errorf("plural label = %q, want %q", got, "Streak: 10 days")
	}
	if got := lines[1].Text; got != "Fresh: 1 day" {
		t.Errorf("singular label = %q, want %q", got, "Fresh: 1 day")
	}
}

func TestPlotIncidenceLabelText(t *testing.T) {
	ch, err := New(hundredRegionTable(), threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for _, e := range ch.Lines() {
		if e.Category == "Green Zone" {
			continue
		}
		if !strings.HasSuffix(e.Text, "case") && !strings.HasSuffix(e.Text, "cases") {
			t.Errorf("incidence label %q should end in a case unit", e.Text)
		}
	}
}

func TestPlotYRangeExpansion(t *testing.T) {
	tbl := &table.Table{HasTimeSafe: true}
	for i := 0; i < 12; i++ {
		tbl.Entries = append(tbl.Entries, &table.Entry{Region: "R", TimeSafe: 7})
	}
	ch, err := New(tbl, singleZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	// Twelve equal rows cascade labels from y=0.5 in 0.06 steps; the first
	// label past the default floor of -0.075 is the 11th at -0.1, which grows
	// the floor to -0.1 minus the 0.075 top padding. The 12th at -0.16 then
	// fits inside the grown viewport and triggers nothing.
	approx(t, "yRange.Min", ch.YRange().Min, -0.175)
	approx(t, "yRange.Max", ch.YRange().Max, DefaultYRange.Max)
}

func TestPlotYRangeExpansionStable(t *testing.T) {
	ch, err := New(hundredRegionTable(), threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	before := ch.YRange()
	ch.Reset()
	if got := ch.YRange(); got != before {
		t.Errorf("re-laying out the same data changed the viewport: %+v -> %+v", before, got)
	}
}

func TestPlotTooltipFields(t *testing.T) {
	ch, err := New(hundredRegionTable(), threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for _, e := range ch.Lines() {
		if e.Region == "" || e.Category == "" {
			t.Fatalf("entry missing region or category: %+v", e)
		}
		if e.Postcode == "" {
			t.Errorf("%s: postcode missing despite the dataset carrying them", e.Region)
		}
		if !strings.HasSuffix(e.PercentChange, "%") {
			t.Errorf("%s: percent change %q not formatted", e.Region, e.PercentChange)
		}
	}
}
