package cli

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/greenzone-vis/greenzone/pkg/cache"
	"github.com/greenzone-vis/greenzone/pkg/errors"
	"github.com/greenzone-vis/greenzone/pkg/table"
)

// dataset bundles a loaded table with its provenance.
type dataset struct {
	Table       *table.Table
	Hash        string
	Source      string
	LastUpdated string
}

// loadDataset resolves a chart's data source, local file or URL, into a
// parsed table. The hash covers the raw bytes so identical downloads map to
// the same snapshot.
func (c *CLI) loadDataset(ctx context.Context, spec *ChartSpec, noCache bool) (*dataset, error) {
	var (
		raw    []byte
		source string
		err    error
	)

	switch {
	case spec.DataFile != "":
		source = spec.DataFile
		raw, err = os.ReadFile(spec.DataFile)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", spec.DataFile)
			}
			return nil, err
		}
	case spec.DataURL != "":
		source = spec.DataURL
		raw, err = c.newFetcher(noCache).Fetch(ctx, spec.DataURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "chart needs a data_file or data_url")
	}

	c.Logger.Debug("dataset loaded", "source", source, "bytes", len(raw))

	tbl, err := parseTable(raw, source, spec.Keys)
	if err != nil {
		return nil, err
	}

	lastUpdated := spec.LastUpdatedTime
	if spec.LastUpdatedURL != "" {
		stamp, err := c.newFetcher(noCache).FetchString(ctx, spec.LastUpdatedURL)
		if err != nil {
			c.Logger.Debug("last-updated fetch failed", "url", spec.LastUpdatedURL, "err", err)
		} else {
			lastUpdated = strings.TrimSpace(stamp)
		}
	}

	return &dataset{
		Table:       tbl,
		Hash:        cache.Hash(raw),
		Source:      source,
		LastUpdated: lastUpdated,
	}, nil
}

// parseTable decodes raw dataset bytes, picking the format from the source's
// extension. Sources without a recognized extension are treated as CSV.
func parseTable(raw []byte, source string, keys table.Keys) (*table.Table, error) {
	ext := filepath.Ext(source)
	if strings.Contains(source, "://") {
		ext = path.Ext(strings.SplitN(source, "?", 2)[0])
	}
	switch strings.ToLower(ext) {
	case ".json":
		return table.ReadJSON(bytes.NewReader(raw), keys)
	default:
		return table.ReadCSV(bytes.NewReader(raw), keys)
	}
}
