package table

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/greenzone-vis/greenzone/pkg/errors"
)

// ReadJSON decodes a row-oriented JSON dataset into a Table.
//
// The input must be an array of objects keyed by column name:
//
//	[
//	  {"District/County Town": "Newtown", "New Cases in Last 14 Days": 3, "Postcode": "2042"},
//	  {"District/County Town": "Bourke", "New Cases in Last 14 Days": 0}
//	]
//
// Optional columns are considered present when any row carries them.
// Numeric cells may be JSON numbers or numeric strings; postcodes may be
// numbers or strings and are normalized to strings.
func ReadJSON(r io.Reader, keys Keys) (*Table, error) {
	keys = keys.merge()

	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadValue, err, "decode dataset")
	}

	t := &Table{}
	for _, row := range rows {
		if _, ok := row[keys.Postcode]; ok {
			t.HasPostcode = true
		}
		if _, ok := row[keys.SecondaryIncidence]; ok {
			t.HasSecondaryIncidence = true
		}
		if _, ok := row[keys.TimeSafe]; ok {
			t.HasTimeSafe = true
		}
		if _, ok := row[keys.PercentChange]; ok {
			t.HasPercentChange = true
		}
	}

	for i, row := range rows {
		region, ok := row[keys.Region]
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingColumn, "row %d: required column %q not found", i, keys.Region)
		}
		if _, ok := row[keys.PrimaryIncidence]; !ok {
			return nil, errors.New(errors.ErrCodeMissingColumn, "row %d: required column %q not found", i, keys.PrimaryIncidence)
		}

		e := &Entry{Region: strings.TrimSpace(fmt.Sprint(region))}

		var err error
		if e.PrimaryIncidence, err = jsonFloat(row[keys.PrimaryIncidence]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBadValue, err, "row %d, column %q", i, keys.PrimaryIncidence)
		}
		if t.HasPostcode {
			e.Postcode = jsonString(row[keys.Postcode])
		}
		if t.HasSecondaryIncidence {
			if e.SecondaryIncidence, err = jsonFloat(row[keys.SecondaryIncidence]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeBadValue, err, "row %d, column %q", i, keys.SecondaryIncidence)
			}
		}
		if t.HasTimeSafe {
			if e.TimeSafe, err = jsonFloat(row[keys.TimeSafe]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeBadValue, err, "row %d, column %q", i, keys.TimeSafe)
			}
		}
		if t.HasPercentChange {
			if e.PercentChange, err = jsonFloat(row[keys.PercentChange]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeBadValue, err, "row %d, column %q", i, keys.PercentChange)
			}
		}

		t.Entries = append(t.Entries, e)
	}

	return t, nil
}

// ReadFile loads a dataset from path, selecting the decoder by extension
// (.csv or .json).
func ReadFile(path string, keys Keys) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, keys)
	case ".json":
		return ReadJSON(f, keys)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset format %q (use .csv or .json)", filepath.Ext(path))
	}
}

func jsonFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, nil
		}
		var f float64
		if _, err := fmt.Sscanf(x, "%g", &f); err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func jsonString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		// Postcodes arrive as numbers from some exporters.
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprint(x)
	default:
		return fmt.Sprint(v)
	}
}
