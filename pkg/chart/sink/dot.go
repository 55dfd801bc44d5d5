package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/greenzone-vis/greenzone/pkg/chart"
)

// DOTOptions configures the category-overview diagram.
type DOTOptions struct {
	// Detailed includes each displayed region's criterion value in its label.
	// When false, only the region name is shown.
	Detailed bool
}

// ToDOT converts the chart into a Graphviz DOT overview: one node per
// category linked to the regions it currently displays. Useful as a quick
// structural view of who made the cut without the full layout geometry.
func ToDOT(ch *chart.Chart, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	cfg := ch.Config()
	for _, c := range ch.Categories() {
		label := fmt.Sprintf("%s\n%.1f%%", c.Label, c.Ratio*100)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, fontcolor=white];\n", c.Label, label, c.Color)

		for _, e := range c.Display {
			label := e.Region
			if opts.Detailed {
				label = fmt.Sprintf("%s\n%v %s", e.Region, c.SortValue(e), c.Unit(cfg))
			}
			fmt.Fprintf(&buf, "  %q [label=%q];\n", e.Region, label)
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.Label, e.Region)
		}
		buf.WriteString("\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT overview to SVG using Graphviz.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
