package chart

import (
	"github.com/greenzone-vis/greenzone/pkg/table"
)

// Chart is the fully resolved layout state for one viewer session: the
// categorized table, the current viewport, the active search query, and the
// two live line collections (normal and searched). A Chart is not safe for
// concurrent use; each session owns exactly one.
type Chart struct {
	cfg Config
	tbl *table.Table

	categories []*Category

	yRange       Range
	lastSearched string

	lines    []*LineEntry
	searched []*LineEntry
	legend   []*LegendEntry
}

// New builds a chart from an input table and configuration. It validates the
// configuration, partitions the table into category pools, selects the
// display sets, and runs the full layout pass. Malformed bounds, zero
// categories, or an empty table abort construction.
func New(tbl *table.Table, cfg Config) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	ch := &Chart{
		cfg:    cfg,
		tbl:    tbl,
		yRange: cfg.YRange,
	}

	cats, err := categorize(tbl, &ch.cfg)
	if err != nil {
		return nil, err
	}
	ch.categories = cats

	for _, c := range ch.categories {
		c.buildDisplay(&ch.cfg)
	}

	ch.buildPlotData()
	ch.buildLegend()

	return ch, nil
}

// Reset discards any injected search row, rebuilds every display set from the
// selector's output, and re-runs the layout pass.
func (ch *Chart) Reset() {
	ch.lastSearched = ""
	for _, c := range ch.categories {
		c.buildDisplay(&ch.cfg)
	}
	ch.buildPlotData()
}

// Lines returns the current normal line entries in display order.
func (ch *Chart) Lines() []*LineEntry { return ch.lines }

// Searched returns the isolated entry for the active search query, or nil.
func (ch *Chart) Searched() *LineEntry {
	if len(ch.searched) == 0 {
		return nil
	}
	return ch.searched[0]
}

// Legend returns the category legend entries, one per category (placeholders
// included for zero-ratio categories).
func (ch *Chart) Legend() []*LegendEntry { return ch.legend }

// Categories returns the category records in severity order.
func (ch *Chart) Categories() []*Category { return ch.categories }

// Config returns the resolved configuration.
func (ch *Chart) Config() *Config { return &ch.cfg }

// XRange returns the horizontal viewport extent.
func (ch *Chart) XRange() Range { return ch.cfg.XRange }

// YRange returns the vertical viewport extent, including any growth applied
// to keep labels visible.
func (ch *Chart) YRange() Range { return ch.yRange }

// LastSearched returns the active search query, or "".
func (ch *Chart) LastSearched() string { return ch.lastSearched }

// Table returns the input table.
func (ch *Chart) Table() *table.Table { return ch.tbl }

// Completions returns the search suggestions: every region name, plus every
// postcode when the dataset carries them (zero postcodes mark regions without
// one and are excluded).
func (ch *Chart) Completions() []string {
	out := make([]string, 0, ch.tbl.Len()*2)
	for _, e := range ch.tbl.Entries {
		out = append(out, e.Region)
	}
	if ch.tbl.HasPostcode {
		for _, e := range ch.tbl.Entries {
			if e.Postcode != "" && e.Postcode != "0" {
				out = append(out, e.Postcode)
			}
		}
	}
	return out
}
