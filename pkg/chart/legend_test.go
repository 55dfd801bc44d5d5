package chart

import (
	"testing"

	"github.com/greenzone-vis/greenzone/pkg/table"
)

func TestLegendCenteredLabels(t *testing.T) {
	ch, err := New(hundredRegionTable(), threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	legend := ch.Legend()
	if len(legend) != 3 {
		t.Fatalf("legend size = %d, want 3", len(legend))
	}

	wantTop := []float64{1, 0.6, 0.3}
	wantMid := []float64{0.8, 0.45, 0.15}
	wantPct := []string{"40.0%", "30.0%", "30.0%"}
	for i, e := range legend {
		if e.Placeholder {
			t.Fatalf("legend[%d] is a placeholder for a populated category", i)
		}
		approx(t, "boxTop", e.BoxTop, wantTop[i])
		approx(t, "textY", e.TextY, wantMid[i])
		if e.TextX != 0 || e.Offset {
			t.Errorf("legend[%d]: large category label should be centered, got textX=%v offset=%v", i, e.TextX, e.Offset)
		}
		if e.Percent != wantPct[i] {
			t.Errorf("legend[%d] percent = %q, want %q", i, e.Percent, wantPct[i])
		}
	}
}

func TestLegendPlaceholderForEmptyCategory(t *testing.T) {
	tbl := &table.Table{Entries: []*table.Entry{
		{Region: "A", PrimaryIncidence: 0},
		{Region: "B", PrimaryIncidence: 25},
	}}
	ch, err := New(tbl, threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	legend := ch.Legend()
	if len(legend) != 3 {
		t.Fatalf("legend size = %d, want 3", len(legend))
	}
	if !legend[1].Placeholder {
		t.Errorf("empty middle category should contribute a placeholder")
	}
	if legend[0].Placeholder || legend[2].Placeholder {
		t.Errorf("populated categories should not be placeholders")
	}
	// The empty category takes no vertical space: the next box starts where
	// the previous one ended.
	approx(t, "red boxTop", legend[2].BoxTop, 0.5)
}

func TestLegendSmallCategoryBranches(t *testing.T) {
	// 19 green rows and 1 red row: the red box is 5% tall, well under the
	// 2.5x spacing threshold, so its label branches out to the left.
	tbl := &table.Table{}
	for i := 0; i < 19; i++ {
		tbl.Entries = append(tbl.Entries, &table.Entry{Region: "G", PrimaryIncidence: 0})
	}
	tbl.Entries = append(tbl.Entries, &table.Entry{Region: "R", PrimaryIncidence: 25})

	ch, err := New(tbl, threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	red := ch.Legend()[2]
	if red.Placeholder || !red.Offset {
		t.Fatalf("small category should branch: %+v", red)
	}
	approx(t, "red textX", red.TextX, legendTextX)
	approx(t, "red textY", red.TextY, 0.025)
	if red.X != [4]float64{-1.475, -1.25, -1.25, -1} {
		t.Errorf("red polyline x = %v", red.X)
	}
}

func TestLegendCrowdedSmallCategories(t *testing.T) {
	// Two adjacent 5% categories: the second label collides with the first
	// and is pushed down by two spacing steps, then the collision resolver
	// shifts the first branch left so the polylines do not cross.
	tbl := &table.Table{}
	for i := 0; i < 90; i++ {
		tbl.Entries = append(tbl.Entries, &table.Entry{Region: "G", PrimaryIncidence: 0})
	}
	for i := 0; i < 5; i++ {
		tbl.Entries = append(tbl.Entries, &table.Entry{Region: "Y", PrimaryIncidence: 5})
	}
	for i := 0; i < 5; i++ {
		tbl.Entries = append(tbl.Entries, &table.Entry{Region: "R", PrimaryIncidence: 25})
	}

	ch, err := New(tbl, threeZoneConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	yellow, red := ch.Legend()[1], ch.Legend()[2]

	approx(t, "yellow textY", yellow.TextY, 0.075)
	approx(t, "red textY", red.TextY, 0.075-2*DefaultMinSpaceY)

	// Red's label moved off its box middle, so its polyline is branched and
	// yellow, sitting directly above the branch, is shifted left one step.
	if red.Y[1] == red.Y[2] {
		t.Errorf("crowded red label should branch vertically: %v", red.Y)
	}
	approx(t, "red textX", red.TextX, legendTextX)
	approx(t, "yellow textX", yellow.TextX, legendTextX-DefaultMinSpaceX)
	approx(t, "yellow x[0]", yellow.X[0], -1.475-DefaultMinSpaceX)
}
