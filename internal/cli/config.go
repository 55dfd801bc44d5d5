package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/greenzone-vis/greenzone/pkg/chart"
	"github.com/greenzone-vis/greenzone/pkg/errors"
)

// ChartSpec describes one chart in a config file: the chart configuration
// plus where its dataset comes from. Exactly one of DataFile or DataURL must
// be set.
type ChartSpec struct {
	chart.Config `yaml:",inline"`

	DataFile       string `yaml:"data_file" toml:"data_file"`
	DataURL        string `yaml:"data_url" toml:"data_url"`
	LastUpdatedURL string `yaml:"last_updated_url" toml:"last_updated_url"`
}

// Source returns the dataset location for display purposes.
func (cs *ChartSpec) Source() string {
	if cs.DataFile != "" {
		return cs.DataFile
	}
	return cs.DataURL
}

func (cs *ChartSpec) validate() error {
	if cs.DataFile == "" && cs.DataURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "chart needs a data_file or data_url")
	}
	if cs.DataFile != "" && cs.DataURL != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "chart has both data_file and data_url, pick one")
	}
	return nil
}

// FileConfig is the top-level structure of a greenzone config file. Config
// files may be YAML (.yaml, .yml) or TOML (.toml).
type FileConfig struct {
	PageTitle string               `yaml:"page_title" toml:"page_title"`
	Charts    map[string]ChartSpec `yaml:"charts" toml:"charts"`
}

// LoadConfig reads and parses a config file, selecting the decoder by
// extension.
func LoadConfig(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing %s", path)
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &fc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}

	if len(fc.Charts) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s defines no charts", path)
	}
	for name, spec := range fc.Charts {
		if err := spec.validate(); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "chart %q", name)
		}
	}
	return &fc, nil
}

// ChartNames returns the configured chart names in sorted order.
func (fc *FileConfig) ChartNames() []string {
	names := make([]string, 0, len(fc.Charts))
	for name := range fc.Charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chart resolves a chart by name. An empty name selects the only chart when
// exactly one is configured.
func (fc *FileConfig) Chart(name string) (*ChartSpec, error) {
	if name == "" {
		if len(fc.Charts) == 1 {
			for _, spec := range fc.Charts {
				return &spec, nil
			}
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"config defines %d charts, name one of: %s", len(fc.Charts), strings.Join(fc.ChartNames(), ", "))
	}
	spec, ok := fc.Charts[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound,
			"no chart %q, have: %s", name, strings.Join(fc.ChartNames(), ", "))
	}
	return &spec, nil
}
