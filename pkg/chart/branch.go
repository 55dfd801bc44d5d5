package chart

// Direction controls which way overlapping branches are pushed apart.
type Direction int

const (
	// DirectionRight grows branches rightward (the main chart's labels).
	DirectionRight Direction = iota
	// DirectionLeft grows branches leftward (the legend's labels).
	DirectionLeft
)

// branchItem gives resolveBranches mutable access to one entry's polyline and
// label position. A nil x marks entries without a line (centered legend labels
// and zero-ratio placeholders), which the sweep skips.
type branchItem struct {
	x     *[4]float64
	y     *[4]float64
	textX *float64
}

// resolveBranches pushes horizontally overlapping branch segments apart.
//
// It walks the entries from last to first (bottom to top on the chart),
// counting the run of consecutive branched entries. An entry is branched when
// its 2nd and 3rd y points differ. A branched entry, or any entry sitting
// directly above a branched run, has its middle x points and label shifted by
// minSpaceX per run member; the run resets as soon as an unbranched entry is
// seen. The result is a staircase of offsets so chained branch segments never
// cross.
func resolveBranches(items []branchItem, dir Direction, minSpaceX float64) {
	run := 0
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if it.x == nil {
			continue
		}

		branched := it.y[1] != it.y[2]
		if branched || run != 0 {
			adj := minSpaceX * float64(run)
			if dir == DirectionLeft {
				adj = -adj
				it.x[0] += adj
			} else {
				it.x[3] += adj
			}
			it.x[1] += adj
			it.x[2] += adj
			*it.textX += adj
			run++
		}

		if !branched {
			run = 0
		}
	}
}
