package chart

import (
	"math"
	"testing"
)

// makeBranchItems builds entries top to bottom; branched[i] controls whether
// the entry's label was pulled off its line.
func makeBranchItems(branched []bool) ([]branchItem, []*LineEntry) {
	entries := make([]*LineEntry, len(branched))
	items := make([]branchItem, len(branched))
	for i, b := range branched {
		lineY := 1.0 - float64(i)*0.1
		textY := lineY
		if b {
			textY = lineY - 0.05
		}
		e := &LineEntry{
			X:     [4]float64{1, 1.25, 1.25, 1.5},
			Y:     [4]float64{lineY, lineY, textY, textY},
			TextX: 1.5,
			TextY: textY,
		}
		entries[i] = e
		items[i] = branchItem{x: &e.X, y: &e.Y, textX: &e.TextX}
	}
	return items, entries
}

func TestResolveBranchesStaircase(t *testing.T) {
	// Runs accumulate bottom-up and reset past an unbranched entry: the entry
	// directly above a run is shifted once more, then the counter clears.
	items, entries := makeBranchItems([]bool{false, true, false, true, true})
	resolveBranches(items, DirectionRight, 0.1)

	wantShift := []float64{0.1, 0, 0.2, 0.1, 0}
	for i, e := range entries {
		got := e.TextX - 1.5
		if math.Abs(got-wantShift[i]) > 1e-9 {
			t.Errorf("entry %d: textX shift = %v, want %v", i, got, wantShift[i])
		}
		if math.Abs((e.X[1]-1.25)-wantShift[i]) > 1e-9 {
			t.Errorf("entry %d: x[1] shift = %v, want %v", i, e.X[1]-1.25, wantShift[i])
		}
		if math.Abs((e.X[3]-1.5)-wantShift[i]) > 1e-9 {
			t.Errorf("entry %d: x[3] shift = %v, want %v", i, e.X[3]-1.5, wantShift[i])
		}
		if e.X[0] != 1 {
			t.Errorf("entry %d: x[0] moved to %v; rightward branches keep the line start", i, e.X[0])
		}
	}
}

func TestResolveBranchesNoBranches(t *testing.T) {
	items, entries := makeBranchItems([]bool{false, false, false})
	resolveBranches(items, DirectionRight, 0.1)

	for i, e := range entries {
		if e.TextX != 1.5 || e.X != [4]float64{1, 1.25, 1.25, 1.5} {
			t.Errorf("entry %d moved with no branches present: %+v", i, e)
		}
	}
}

func TestResolveBranchesLeftward(t *testing.T) {
	// Leftward mode negates the shift and moves the line start instead of the
	// label end, so legend branches grow away from the boxes.
	items, entries := makeBranchItems([]bool{true, true})
	resolveBranches(items, DirectionLeft, 0.1)

	bottom, top := entries[1], entries[0]
	if bottom.X[0] != 1 || bottom.TextX != 1.5 {
		t.Errorf("bottom entry shifted on a zero run: %+v", bottom)
	}
	if math.Abs(top.X[0]-(1-0.1)) > 1e-9 {
		t.Errorf("top x[0] = %v, want shifted left by one step", top.X[0])
	}
	if math.Abs(top.TextX-(1.5-0.1)) > 1e-9 {
		t.Errorf("top textX = %v, want shifted left by one step", top.TextX)
	}
	if top.X[3] != 1.5 {
		t.Errorf("top x[3] = %v; leftward branches keep the box end fixed", top.X[3])
	}
}

func TestResolveBranchesSkipsNilItems(t *testing.T) {
	items, entries := makeBranchItems([]bool{true, true})
	// A gap (placeholder) between the two must not break the run counter's
	// walk, nor be touched itself.
	items = []branchItem{items[0], {}, items[1]}
	resolveBranches(items, DirectionRight, 0.1)

	if math.Abs(entries[0].TextX-1.6) > 1e-9 {
		t.Errorf("entry above the gap: textX = %v, want 1.6", entries[0].TextX)
	}
	if entries[1].TextX != 1.5 {
		t.Errorf("entry below the gap: textX = %v, want unshifted 1.5", entries[1].TextX)
	}
}

func TestResolveBranchesDeterministic(t *testing.T) {
	pattern := []bool{true, false, true, true, false, true}
	itemsA, entriesA := makeBranchItems(pattern)
	itemsB, entriesB := makeBranchItems(pattern)
	resolveBranches(itemsA, DirectionRight, 0.09)
	resolveBranches(itemsB, DirectionRight, 0.09)

	for i := range entriesA {
		if entriesA[i].X != entriesB[i].X || entriesA[i].TextX != entriesB[i].TextX {
			t.Errorf("entry %d differs between identical runs", i)
		}
	}
}
