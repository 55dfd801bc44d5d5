package chart

import (
	"github.com/greenzone-vis/greenzone/pkg/errors"
	"github.com/greenzone-vis/greenzone/pkg/table"
)

// Default sizing values. The chart box spans x,y = [0,1]; ranges and spacing
// are proportional to that unit box.
const (
	DefaultAspectRatio         = 0.9
	DefaultMinSpaceX           = 0.09
	DefaultMinSpaceY           = 0.06
	DefaultTotalDisplayRegions = 12
	DefaultMinDisplayRegions   = 2
	DefaultFontSize            = 16.0
)

// DefaultXRange and DefaultYRange are the default viewport extents.
var (
	DefaultXRange = Range{Min: -4, Max: 7}
	DefaultYRange = Range{Min: -0.075, Max: 1.075}
)

// Default unit and display strings.
const (
	DefaultRegionType          = "Region"
	DefaultTimeSafeUnit        = "day"
	DefaultTimeSafePluralUnit  = "days"
	DefaultIncidenceUnit       = "case"
	DefaultIncidencePluralUnit = "cases"

	DefaultLastUpdatedText       = "Last updated"
	DefaultLegendTitle           = "Legend"
	DefaultSearchbarPlaceholder  = "Search for a region..."
	DefaultResetButtonText       = "Reset"
	DefaultRegionNameTooltip     = "Region Name"
	DefaultCategoryTooltip       = "Category"
	DefaultRegionCodeTooltip     = "Region Code"
	DefaultTimeSafeTooltip       = "COVID-Free Days"
	DefaultPrimaryIncidenceTip   = "New Cases in Last 14 Days"
	DefaultSecondaryIncidenceTip = "New Cases in Last 7 Days"
	DefaultPercentChangeTooltip  = "Weekly Percent Change"
)

// Range is an inclusive viewport extent along one axis.
type Range struct {
	Min float64 `yaml:"min" toml:"min" json:"min"`
	Max float64 `yaml:"max" toml:"max" json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Config bundles everything needed to build a Chart. The required parallel
// arrays (Labels, Descriptions, Colors, LowerBounds) define the severity
// categories in order from best to worst; everything else has a default.
type Config struct {
	Title string `yaml:"title" toml:"title" json:"title"`

	// Category definitions; parallel arrays, required, equal length.
	Labels       []string  `yaml:"labels" toml:"labels" json:"labels"`
	Descriptions []string  `yaml:"descriptions" toml:"descriptions" json:"descriptions"`
	Colors       []string  `yaml:"colors" toml:"colors" json:"colors"`
	LowerBounds  []float64 `yaml:"lower_bounds" toml:"lower_bounds" json:"lower_bounds"`

	// CalcWithSecondaryIncidence forces the category at index i to bound and
	// sort on the secondary incidence column. Defaults to all false.
	CalcWithSecondaryIncidence []bool `yaml:"calc_with_secondary_incidence" toml:"calc_with_secondary_incidence" json:"calc_with_secondary_incidence"`

	// Sizing.
	AspectRatio         float64 `yaml:"aspect_ratio" toml:"aspect_ratio" json:"aspect_ratio"`
	XRange              Range   `yaml:"x_range" toml:"x_range" json:"x_range"`
	YRange              Range   `yaml:"y_range" toml:"y_range" json:"y_range"`
	MinSpaceX           float64 `yaml:"min_space_x" toml:"min_space_x" json:"min_space_x"`
	MinSpaceY           float64 `yaml:"min_space_y" toml:"min_space_y" json:"min_space_y"`
	TotalDisplayRegions int     `yaml:"total_display_regions" toml:"total_display_regions" json:"total_display_regions"`
	MinDisplayRegions   int     `yaml:"min_display_regions" toml:"min_display_regions" json:"min_display_regions"`
	FontSize            float64 `yaml:"font_size" toml:"font_size" json:"font_size"`

	// Column names.
	Keys table.Keys `yaml:",inline" toml:"keys" json:"keys"`

	// Units.
	RegionType          string `yaml:"region_type" toml:"region_type" json:"region_type"`
	TimeSafeUnit        string `yaml:"time_safe_unit" toml:"time_safe_unit" json:"time_safe_unit"`
	TimeSafePluralUnit  string `yaml:"time_safe_plural_unit" toml:"time_safe_plural_unit" json:"time_safe_plural_unit"`
	IncidenceUnit       string `yaml:"incidence_unit" toml:"incidence_unit" json:"incidence_unit"`
	IncidencePluralUnit string `yaml:"incidence_plural_unit" toml:"incidence_plural_unit" json:"incidence_plural_unit"`

	// Display strings.
	LastUpdatedText           string `yaml:"last_updated_text" toml:"last_updated_text" json:"last_updated_text"`
	LastUpdatedTime           string `yaml:"last_updated_time" toml:"last_updated_time" json:"last_updated_time"`
	LegendTitle               string `yaml:"legend_title" toml:"legend_title" json:"legend_title"`
	SearchbarPlaceholder      string `yaml:"searchbar_placeholder" toml:"searchbar_placeholder" json:"searchbar_placeholder"`
	ResetButtonText           string `yaml:"reset_button_text" toml:"reset_button_text" json:"reset_button_text"`
	RegionNameTooltip         string `yaml:"region_name_tooltip" toml:"region_name_tooltip" json:"region_name_tooltip"`
	CategoryTooltip           string `yaml:"category_tooltip" toml:"category_tooltip" json:"category_tooltip"`
	RegionCodeTooltip         string `yaml:"region_code_tooltip" toml:"region_code_tooltip" json:"region_code_tooltip"`
	TimeSafeTooltip           string `yaml:"time_safe_tooltip" toml:"time_safe_tooltip" json:"time_safe_tooltip"`
	PrimaryIncidenceTooltip   string `yaml:"primary_incidence_tooltip" toml:"primary_incidence_tooltip" json:"primary_incidence_tooltip"`
	SecondaryIncidenceTooltip string `yaml:"secondary_incidence_tooltip" toml:"secondary_incidence_tooltip" json:"secondary_incidence_tooltip"`
	PercentChangeTooltip      string `yaml:"percent_change_tooltip" toml:"percent_change_tooltip" json:"percent_change_tooltip"`
}

// SetDefaults fills unset optional fields with the package defaults.
// It is idempotent and called by [New]; loaders may call it early to present
// resolved values.
func (c *Config) SetDefaults() {
	if c.AspectRatio == 0 {
		c.AspectRatio = DefaultAspectRatio
	}
	if c.XRange == (Range{}) {
		c.XRange = DefaultXRange
	}
	if c.YRange == (Range{}) {
		c.YRange = DefaultYRange
	}
	if c.MinSpaceX == 0 {
		c.MinSpaceX = DefaultMinSpaceX
	}
	if c.MinSpaceY == 0 {
		c.MinSpaceY = DefaultMinSpaceY
	}
	if c.TotalDisplayRegions == 0 {
		c.TotalDisplayRegions = DefaultTotalDisplayRegions
	}
	if c.MinDisplayRegions == 0 {
		c.MinDisplayRegions = DefaultMinDisplayRegions
	}
	if c.FontSize == 0 {
		c.FontSize = DefaultFontSize
	}
	if c.CalcWithSecondaryIncidence == nil {
		c.CalcWithSecondaryIncidence = make([]bool, len(c.Labels))
	}

	if c.RegionType == "" {
		c.RegionType = DefaultRegionType
	}
	if c.TimeSafeUnit == "" {
		c.TimeSafeUnit = DefaultTimeSafeUnit
	}
	if c.TimeSafePluralUnit == "" {
		c.TimeSafePluralUnit = DefaultTimeSafePluralUnit
	}
	if c.IncidenceUnit == "" {
		c.IncidenceUnit = DefaultIncidenceUnit
	}
	if c.IncidencePluralUnit == "" {
		c.IncidencePluralUnit = DefaultIncidencePluralUnit
	}

	if c.LastUpdatedText == "" {
		c.LastUpdatedText = DefaultLastUpdatedText
	}
	if c.LegendTitle == "" {
		c.LegendTitle = DefaultLegendTitle
	}
	if c.SearchbarPlaceholder == "" {
		c.SearchbarPlaceholder = DefaultSearchbarPlaceholder
	}
	if c.ResetButtonText == "" {
		c.ResetButtonText = DefaultResetButtonText
	}
	if c.RegionNameTooltip == "" {
		c.RegionNameTooltip = DefaultRegionNameTooltip
	}
	if c.CategoryTooltip == "" {
		c.CategoryTooltip = DefaultCategoryTooltip
	}
	if c.RegionCodeTooltip == "" {
		c.RegionCodeTooltip = DefaultRegionCodeTooltip
	}
	if c.TimeSafeTooltip == "" {
		c.TimeSafeTooltip = DefaultTimeSafeTooltip
	}
	if c.PrimaryIncidenceTooltip == "" {
		c.PrimaryIncidenceTooltip = DefaultPrimaryIncidenceTip
	}
	if c.SecondaryIncidenceTooltip == "" {
		c.SecondaryIncidenceTooltip = DefaultSecondaryIncidenceTip
	}
	if c.PercentChangeTooltip == "" {
		c.PercentChangeTooltip = DefaultPercentChangeTooltip
	}
}

// Validate checks the required category arrays. Failures here are fatal
// construction errors: no partial chart is ever produced from a bad config.
func (c *Config) Validate() error {
	n := len(c.Labels)
	if n == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one category is required")
	}
	if len(c.Descriptions) != n || len(c.Colors) != n || len(c.LowerBounds) != n {
		return errors.New(errors.ErrCodeInvalidConfig,
			"labels, descriptions, colors and lower_bounds must have equal length (got %d/%d/%d/%d)",
			n, len(c.Descriptions), len(c.Colors), len(c.LowerBounds))
	}
	if c.CalcWithSecondaryIncidence != nil && len(c.CalcWithSecondaryIncidence) != n {
		return errors.New(errors.ErrCodeInvalidConfig,
			"calc_with_secondary_incidence must have one flag per category (got %d, want %d)",
			len(c.CalcWithSecondaryIncidence), n)
	}
	for i := 1; i < n; i++ {
		if c.LowerBounds[i] < c.LowerBounds[i-1] {
			return errors.New(errors.ErrCodeInvalidBounds,
				"lower_bounds must be non-decreasing: bound[%d]=%v < bound[%d]=%v",
				i, c.LowerBounds[i], i-1, c.LowerBounds[i-1])
		}
	}
	return nil
}
