// Package table provides the typed input table for chart construction.
//
// The original data pipeline ships row-oriented datasets with named columns.
// This package converts those rows into explicit Entry records at load time,
// validating the required columns once instead of relying on label-based
// lookups during layout.
package table

// Keys names the dataset columns an Entry is read from. Deployments rename
// columns freely, so every accessor goes through this mapping.
type Keys struct {
	Region             string `yaml:"region_key" toml:"region_key" json:"region_key"`
	PrimaryIncidence   string `yaml:"primary_incidence_key" toml:"primary_incidence_key" json:"primary_incidence_key"`
	SecondaryIncidence string `yaml:"secondary_incidence_key" toml:"secondary_incidence_key" json:"secondary_incidence_key"`
	TimeSafe           string `yaml:"time_safe_key" toml:"time_safe_key" json:"time_safe_key"`
	Postcode           string `yaml:"postcode_key" toml:"postcode_key" json:"postcode_key"`
	PercentChange      string `yaml:"percent_change_key" toml:"percent_change_key" json:"percent_change_key"`
}

// DefaultKeys returns the column names used by the reference dataset.
func DefaultKeys() Keys {
	return Keys{
		Region:             "District/County Town",
		PrimaryIncidence:   "New Cases in Last 14 Days",
		SecondaryIncidence: "Last 7 Days",
		TimeSafe:           "COVID-Free Days",
		Postcode:           "Postcode",
		PercentChange:      "Pct Change",
	}
}

// merge fills unset fields from defaults.
func (k Keys) merge() Keys {
	d := DefaultKeys()
	if k.Region == "" {
		k.Region = d.Region
	}
	if k.PrimaryIncidence == "" {
		k.PrimaryIncidence = d.PrimaryIncidence
	}
	if k.SecondaryIncidence == "" {
		k.SecondaryIncidence = d.SecondaryIncidence
	}
	if k.TimeSafe == "" {
		k.TimeSafe = d.TimeSafe
	}
	if k.Postcode == "" {
		k.Postcode = d.Postcode
	}
	if k.PercentChange == "" {
		k.PercentChange = d.PercentChange
	}
	return k
}

// Entry is one input row. Entries are immutable after loading; the chart
// engine shares pointers into the table rather than copying rows.
type Entry struct {
	Region             string
	Postcode           string
	PrimaryIncidence   float64
	SecondaryIncidence float64
	TimeSafe           float64
	PercentChange      float64
}

// Table is the full input dataset plus which optional columns were present.
type Table struct {
	Entries []*Entry

	HasPostcode           bool
	HasSecondaryIncidence bool
	HasTimeSafe           bool
	HasPercentChange      bool
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Entries) }

// MaxPrimaryIncidence returns the largest primary incidence across all rows,
// or 0 for an empty table. The chart engine uses it to synthesize the final
// category bound.
func (t *Table) MaxPrimaryIncidence() float64 {
	var max float64
	for i, e := range t.Entries {
		if i == 0 || e.PrimaryIncidence > max {
			max = e.PrimaryIncidence
		}
	}
	return max
}
