package sink

import (
	"github.com/greenzone-vis/greenzone/pkg/chart"
	"github.com/greenzone-vis/greenzone/pkg/render"
)

// RenderPDF renders the chart as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ch *chart.Chart, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(ch, opts...))
}

// RenderPNG renders the chart as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ch *chart.Chart, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(ch, opts...), scale)
}
