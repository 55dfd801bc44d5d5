// Package sink renders resolved chart layouts to output formats.
//
// The chart package computes pure geometry; sinks turn that geometry into
// bytes. [RenderSVG] is the primary sink and needs no external tooling.
// [RenderPNG] and [RenderPDF] convert its output with librsvg, and [ToDOT]
// produces a Graphviz overview of the current display sets.
//
//	ch, _ := chart.New(tbl, cfg)
//	svg := sink.RenderSVG(ch, sink.WithLastUpdated("31/12/2021"))
package sink
