package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenzone-vis/greenzone/pkg/cache"
	"github.com/greenzone-vis/greenzone/pkg/chart"
	"github.com/greenzone-vis/greenzone/pkg/chart/sink"
	"github.com/greenzone-vis/greenzone/pkg/errors"
)

// renderFormats are the supported output formats.
var renderFormats = []string{"svg", "png", "pdf", "dot"}

type renderOpts struct {
	output   string
	formats  string
	search   string
	width    float64
	scale    float64
	detailed bool
	noCache  bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <config> [chart]",
		Short: "Render charts to files",
		Long: `Render loads the datasets named in a config file, builds the ranking
chart for each, and writes the results to disk.

With a chart name only that chart is rendered; otherwise every chart in the
config is. PNG and PDF output require rsvg-convert on the PATH.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(opts.formats)
			if err != nil {
				return err
			}

			fc, err := LoadConfig(args[0])
			if err != nil {
				return err
			}

			names := fc.ChartNames()
			if len(args) == 2 {
				if _, err := fc.Chart(args[1]); err != nil {
					return err
				}
				names = []string{args[1]}
			}

			if err := os.MkdirAll(opts.output, 0o755); err != nil {
				return err
			}

			for _, name := range names {
				if err := c.renderChart(cmd, fc, name, formats, opts); err != nil {
					return err
				}
			}
			printSuccess("rendered %d chart(s) to %s", len(names), opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "comma-separated formats: svg, png, pdf, dot")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "isolate a region by name or code before rendering")
	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "SVG width in pixels (0 for default)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG raster scale factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include per-region details in DOT output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the dataset download cache")

	return cmd
}

func (c *CLI) renderChart(cmd *cobra.Command, fc *FileConfig, name string, formats []string, opts renderOpts) error {
	spec, err := fc.Chart(name)
	if err != nil {
		return err
	}

	sp := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("loading %s", spec.Source()))
	sp.Start()
	ds, err := c.loadDataset(cmd.Context(), spec, opts.noCache)
	if err != nil {
		sp.StopWithError(fmt.Sprintf("loading %s failed", spec.Source()))
		return err
	}
	sp.StopWithSuccess(fmt.Sprintf("loaded %d regions from %s", ds.Table.Len(), spec.Source()))

	cfg := spec.Config
	if cfg.Title == "" {
		cfg.Title = fc.PageTitle
	}
	if ds.LastUpdated != "" {
		cfg.LastUpdatedTime = ds.LastUpdated
	}
	ch, err := chart.New(ds.Table, cfg)
	if err != nil {
		return err
	}
	if opts.search != "" {
		ch.Search(opts.search)
		if ch.Searched() == nil {
			printWarning("no region matches %q", opts.search)
		}
	}

	printInfo("%s", StyleTitle.Render(name))
	printDetail("%d categories", len(ch.Categories()))

	store, err := newCache(opts.noCache)
	if err != nil {
		store = cache.NewNullCache()
	}
	defer store.Close()

	for _, format := range formats {
		data, err := c.renderFormat(cmd.Context(), store, ch, ds, format, opts)
		if err != nil {
			return err
		}
		out := filepath.Join(opts.output, name+"."+format)
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		printFile(out)
	}
	return nil
}

// renderFormat produces one output format. Rasterized formats go through
// rsvg-convert, so those artifacts are cached by table hash and render
// options.
func (c *CLI) renderFormat(ctx context.Context, store cache.Cache, ch *chart.Chart, ds *dataset, format string, opts renderOpts) ([]byte, error) {
	svgOpts := []sink.SVGOption{}
	if opts.width > 0 {
		svgOpts = append(svgOpts, sink.WithWidth(opts.width))
	}
	if lu := ch.Config().LastUpdatedTime; lu != "" {
		svgOpts = append(svgOpts, sink.WithLastUpdated(lu))
	}

	switch format {
	case "svg":
		return sink.RenderSVG(ch, svgOpts...), nil
	case "png", "pdf":
		key := cache.NewDefaultKeyer().ArtifactKey(ds.Hash, cache.ArtifactKeyOpts{
			Format:     format,
			Query:      ch.LastSearched(),
			Scale:      opts.scale,
			ConfigHash: configHash(ch.Config()),
		})
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			c.Logger.Debug("artifact cache hit", "format", format)
			return data, nil
		}

		var (
			data []byte
			err  error
		)
		if format == "png" {
			data, err = sink.RenderPNG(ch, opts.scale, svgOpts...)
		} else {
			data, err = sink.RenderPDF(ch, svgOpts...)
		}
		if err != nil {
			return nil, err
		}
		if err := store.Set(ctx, key, data, 0); err != nil {
			c.Logger.Debug("artifact cache write failed", "err", err)
		}
		return data, nil
	case "dot":
		return []byte(sink.ToDOT(ch, sink.DOTOptions{Detailed: opts.detailed})), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
}

// configHash fingerprints the resolved chart configuration for artifact
// cache keys.
func configHash(cfg *chart.Config) string {
	raw, _ := json.Marshal(cfg)
	return cache.Hash(raw)
}

// parseFormats splits and validates a comma-separated format list.
func parseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		valid := false
		for _, known := range renderFormats {
			if f == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"unsupported format %q (use %s)", f, strings.Join(renderFormats, ", "))
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, errors.New(errors.ErrCodeUnsupported, "no output format given")
	}
	return formats, nil
}
