package table

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/greenzone-vis/greenzone/pkg/errors"
)

// ReadCSV decodes a header-mapped CSV dataset into a Table.
//
// The header row is matched against keys (unset fields fall back to
// [DefaultKeys]). The region and primary incidence columns are required;
// postcode, secondary incidence, time-safe count and percent change are
// optional and tracked via the Has* flags on the returned table.
func ReadCSV(r io.Reader, keys Keys) (*Table, error) {
	keys = keys.merge()

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeEmptyTable, "dataset has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadValue, err, "read header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	region, ok := cols[keys.Region]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingColumn, "required column %q not found", keys.Region)
	}
	primary, ok := cols[keys.PrimaryIncidence]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingColumn, "required column %q not found", keys.PrimaryIncidence)
	}

	postcode, hasPostcode := cols[keys.Postcode]
	secondary, hasSecondary := cols[keys.SecondaryIncidence]
	timeSafe, hasTimeSafe := cols[keys.TimeSafe]
	pctChange, hasPctChange := cols[keys.PercentChange]

	t := &Table{
		HasPostcode:           hasPostcode,
		HasSecondaryIncidence: hasSecondary,
		HasTimeSafe:           hasTimeSafe,
		HasPercentChange:      hasPctChange,
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBadValue, err, "line %d", line)
		}

		e := &Entry{Region: strings.TrimSpace(record[region])}

		if e.PrimaryIncidence, err = parseFloat(record[primary]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBadValue, err, "line %d, column %q", line, keys.PrimaryIncidence)
		}
		if hasPostcode {
			e.Postcode = strings.TrimSpace(record[postcode])
		}
		if hasSecondary {
			if e.SecondaryIncidence, err = parseFloat(record[secondary]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeBadValue, err, "line %d, column %q", line, keys.SecondaryIncidence)
			}
		}
		if hasTimeSafe {
			if e.TimeSafe, err = parseFloat(record[timeSafe]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeBadValue, err, "line %d, column %q", line, keys.TimeSafe)
			}
		}
		if hasPctChange {
			if e.PercentChange, err = parseFloat(record[pctChange]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeBadValue, err, "line %d, column %q", line, keys.PercentChange)
			}
		}

		t.Entries = append(t.Entries, e)
	}

	return t, nil
}

// parseFloat parses a numeric cell, treating blanks as zero. Datasets leave
// optional cells empty for regions without data.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
