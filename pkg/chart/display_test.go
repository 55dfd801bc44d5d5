package chart

import (
	"testing"

	"github.com/greenzone-vis/greenzone/pkg/table"
)

func TestDisplayCounts(t *testing.T) {
	cfg := threeZoneConfig()
	cfg.SetDefaults()

	cats, err := categorize(hundredRegionTable(), &cfg)
	if err != nil {
		t.Fatalf("categorize error: %v", err)
	}

	// total 12 x ratios [0.4, 0.3, 0.3] floors to [4, 3, 3].
	want := []int{4, 3, 3}
	for i, c := range cats {
		c.buildDisplay(&cfg)
		if len(c.Display) != want[i] {
			t.Errorf("display[%d] size = %d, want %d", i, len(c.Display), want[i])
		}
	}
}

func TestDisplayMinimumFloor(t *testing.T) {
	cfg := threeZoneConfig()
	cfg.SetDefaults()

	// One row out of 100 in the red zone: floor(12 * 0.01) = 0, floored up to
	// the configured minimum, then sliced to the pool size.
	tbl := &table.Table{}
	for i := 0; i < 99; i++ {
		tbl.Entries = append(tbl.Entries, &table.Entry{Region: "G", PrimaryIncidence: 0})
	}
	tbl.Entries = append(tbl.Entries, &table.Entry{Region: "Lone", PrimaryIncidence: 50})

	cats, err := categorize(tbl, &cfg)
	if err != nil {
		t.Fatalf("categorize error: %v", err)
	}
	red := cats[2]
	red.buildDisplay(&cfg)

	if got := red.displayCount(&cfg); got != cfg.MinDisplayRegions {
		t.Errorf("displayCount = %d, want the minimum %d", got, cfg.MinDisplayRegions)
	}
	if len(red.Display) != 1 || red.Display[0].Region != "Lone" {
		t.Errorf("display should hold the single pooled row, got %d rows", len(red.Display))
	}
}

func TestDisplaySentinelTail(t *testing.T) {
	cfg := threeZoneConfig()
	cfg.SetDefaults()

	cats, err := categorize(hundredRegionTable(), &cfg)
	if err != nil {
		t.Fatalf("categorize error: %v", err)
	}

	// Red zone pool covers incidence 20..49; budget 3 means the last display
	// slot holds the pool's worst row instead of the third best.
	red := cats[2]
	red.buildDisplay(&cfg)

	if len(red.Display) != 3 {
		t.Fatalf("display size = %d, want 3", len(red.Display))
	}
	if got := red.Incidence(red.Display[0]); got != 20 {
		t.Errorf("first displayed incidence = %v, want 20", got)
	}
	if got := red.Incidence(red.Display[1]); got != 21 {
		t.Errorf("second displayed incidence = %v, want 21", got)
	}
	if got := red.Incidence(red.Display[2]); got != 49 {
		t.Errorf("sentinel incidence = %v, want the pool worst 49", got)
	}
}

func TestDisplayGreenZoneOrder(t *testing.T) {
	cfg := threeZoneConfig()
	cfg.SetDefaults()

	cats, err := categorize(hundredRegionTable(), &cfg)
	if err != nil {
		t.Fatalf("categorize error: %v", err)
	}

	// Green zone ranks by disease-free days descending; the test table gives
	// row i TimeSafe 100-i, so the best rows are the earliest.
	green := cats[0]
	green.buildDisplay(&cfg)

	for i := 1; i < len(green.Display)-1; i++ {
		if green.Display[i].TimeSafe > green.Display[i-1].TimeSafe {
			t.Errorf("green zone display not descending at index %d", i)
		}
	}
	// Sentinel: the shortest streak in the pool.
	last := green.Display[len(green.Display)-1]
	for _, e := range green.Pool {
		if e.TimeSafe < last.TimeSafe {
			t.Errorf("sentinel TimeSafe %v is not the pool minimum (found %v)", last.TimeSafe, e.TimeSafe)
			break
		}
	}
}

func TestDisplayPoolExactlyBudget(t *testing.T) {
	cfg := threeZoneConfig()
	cfg.TotalDisplayRegions = 100
	cfg.SetDefaults()

	cats, err := categorize(hundredRegionTable(), &cfg)
	if err != nil {
		t.Fatalf("categorize error: %v", err)
	}

	// Budget 100 * 0.3 = 30 equals the pool size: no sentinel swap, the whole
	// pool is displayed in rank order.
	red := cats[2]
	red.buildDisplay(&cfg)
	if len(red.Display) != 30 {
		t.Fatalf("display size = %d, want the full pool 30", len(red.Display))
	}
	if got := red.Incidence(red.Display[29]); got != 49 {
		t.Errorf("last displayed incidence = %v, want 49", got)
	}
	if got := red.Incidence(red.Display[28]); got != 48 {
		t.Errorf("second-to-last displayed incidence = %v, want 48 (no sentinel swap)", got)
	}
}
