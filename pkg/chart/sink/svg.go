package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/greenzone-vis/greenzone/pkg/chart"
)

// The colored category bands span this fixed horizontal slice of data space;
// region lines leave the right edge, legend branches leave the left.
const (
	bandLeftX  = -1.0
	bandRightX = 1.0

	defaultWidth = 990.0
)

const chartCSS = `
    text { font-family: Helvetica, Arial, sans-serif; }
    .region-line { fill: none; }
    .region-label { cursor: default; }
    .searched .region-line { stroke-width: 3; }
    .searched .region-label { font-weight: bold; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width       float64
	lastUpdated string
	legend      bool
}

// WithWidth sets the rendered pixel width. Height follows from the
// configured aspect ratio.
func WithWidth(w float64) SVGOption { return func(r *svgRenderer) { r.width = w } }

// WithLastUpdated adds a freshness line under the title.
func WithLastUpdated(s string) SVGOption { return func(r *svgRenderer) { r.lastUpdated = s } }

// WithoutLegend drops the category labels on the left of the bands.
func WithoutLegend() SVGOption { return func(r *svgRenderer) { r.legend = false } }

// RenderSVG renders the chart's current layout state to a standalone SVG
// document. The output is deterministic for a given chart state.
func RenderSVG(ch *chart.Chart, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	cfg := ch.Config()

	width := r.width
	height := width / cfg.AspectRatio
	xr, yr := ch.XRange(), ch.YRange()

	// Data space to pixel space; y flips because SVG grows downward.
	px := func(x float64) float64 { return (x - xr.Min) / xr.Span() * width }
	py := func(y float64) float64 { return (yr.Max - y) / yr.Span() * height }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", chartCSS)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)

	renderTitle(&buf, r, cfg)
	renderBands(&buf, ch, px, py)
	if r.legend {
		renderLegend(&buf, ch, px, py, cfg.FontSize)
	}
	for _, e := range ch.Lines() {
		renderLine(&buf, ch, e, px, py, false)
	}
	if s := ch.Searched(); s != nil {
		renderLine(&buf, ch, s, px, py, true)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: defaultWidth, legend: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderTitle(buf *bytes.Buffer, r svgRenderer, cfg *chart.Config) {
	if cfg.Title != "" {
		fmt.Fprintf(buf, `  <text x="10" y="%.1f" font-size="%.0f" font-weight="bold">%s</text>`+"\n",
			cfg.FontSize*1.5, cfg.FontSize*1.25, escape(cfg.Title))
	}
	if r.lastUpdated != "" {
		fmt.Fprintf(buf, `  <text x="10" y="%.1f" font-size="%.0f" fill="#555">%s %s</text>`+"\n",
			cfg.FontSize*2.75, cfg.FontSize*0.8, escape(cfg.LastUpdatedText), escape(r.lastUpdated))
	}
}

// renderBands draws the stacked category rectangles. Legend entries and
// categories are parallel; placeholders mark empty categories that take no
// vertical space.
func renderBands(buf *bytes.Buffer, ch *chart.Chart, px, py func(float64) float64) {
	cats := ch.Categories()
	for i, le := range ch.Legend() {
		if le.Placeholder {
			continue
		}
		c := cats[i]
		top, bottom := py(le.BoxTop), py(le.BoxTop-c.Ratio)
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.85">`,
			px(bandLeftX), top, px(bandRightX)-px(bandLeftX), bottom-top, escape(le.Color))
		fmt.Fprintf(buf, `<title>%s</title></rect>`+"\n", escape(c.Description))
	}
}

func renderLegend(buf *bytes.Buffer, ch *chart.Chart, px, py func(float64) float64, fontSize float64) {
	for _, le := range ch.Legend() {
		if le.Placeholder {
			continue
		}
		if le.Offset {
			fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
				points(le.X, le.Y, px, py), escape(le.Color))
			// Branched labels sit left of their connector, both lines
			// right-aligned against it.
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="end">%s</text>`+"\n",
				px(le.TextX), py(le.TextY)-fontSize*0.2, fontSize, escape(le.Label))
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="end" fill="#555">%s</text>`+"\n",
				px(le.TextX), py(le.TextY)+fontSize, fontSize*0.85, escape(le.Percent))
			continue
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" font-weight="bold">%s</text>`+"\n",
			px(le.TextX), py(le.TextY)-fontSize*0.2, fontSize, escape(le.Label))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" fill="#333">%s</text>`+"\n",
			px(le.TextX), py(le.TextY)+fontSize, fontSize*0.85, escape(le.Percent))
	}
}

func renderLine(buf *bytes.Buffer, ch *chart.Chart, e *chart.LineEntry, px, py func(float64) float64, searched bool) {
	class := ""
	if searched {
		class = ` class="searched"`
	}
	fmt.Fprintf(buf, "  <g%s>\n", class)
	fmt.Fprintf(buf, `    <polyline class="region-line" points="%s" stroke="%s" stroke-width="2"/>`+"\n",
		points(e.X, e.Y, px, py), escape(e.Color))

	fontSize := ch.Config().FontSize
	fmt.Fprintf(buf, `    <text class="region-label" x="%.1f" y="%.1f" font-size="%.0f">%s<title>%s</title></text>`+"\n",
		px(e.TextX)+fontSize*0.4, py(e.TextY)+fontSize*0.35, fontSize, escape(e.Text), escape(tooltip(ch, e)))
	buf.WriteString("  </g>\n")
}

// tooltip assembles the hover text from the entry's display fields, using the
// configured field titles.
func tooltip(ch *chart.Chart, e *chart.LineEntry) string {
	cfg := ch.Config()
	tbl := ch.Table()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", cfg.RegionNameTooltip, e.Region)
	fmt.Fprintf(&b, "%s: %s\n", cfg.CategoryTooltip, e.Category)
	if tbl.HasPostcode && e.Postcode != "" {
		fmt.Fprintf(&b, "%s: %s\n", cfg.RegionCodeTooltip, e.Postcode)
	}
	if tbl.HasTimeSafe {
		fmt.Fprintf(&b, "%s: %.0f\n", cfg.TimeSafeTooltip, e.TimeSafe)
	}
	fmt.Fprintf(&b, "%s: %.0f\n", cfg.PrimaryIncidenceTooltip, e.PrimaryIncidence)
	if tbl.HasSecondaryIncidence {
		fmt.Fprintf(&b, "%s: %.0f\n", cfg.SecondaryIncidenceTooltip, e.SecondaryIncidence)
	}
	if tbl.HasPercentChange && e.PercentChange != "" {
		fmt.Fprintf(&b, "%s: %s\n", cfg.PercentChangeTooltip, e.PercentChange)
	}
	return strings.TrimRight(b.String(), "\n")
}

func points(xs, ys [4]float64, px, py func(float64) float64) string {
	parts := make([]string, len(xs))
	for i := range xs {
		parts[i] = fmt.Sprintf("%.1f,%.1f", px(xs[i]), py(ys[i]))
	}
	return strings.Join(parts, " ")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
