// Package export writes feature tables for downstream classifiers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/motion.report/internal/motion/features"
)

// WindowColumn is the leading column of a feature CSV.
const WindowColumn = "window"

// Header returns the feature CSV header: the window column followed by
// every canonical key in order.
func Header() []string {
	return append([]string{WindowColumn}, features.Keys()...)
}

// WriteFeatureCSV writes rows with a header of canonical keys. windows
// gives each row's window index; nil numbers rows from 0.
func WriteFeatureCSV(w io.Writer, windows []int, rows features.Table) error {
	if windows != nil && len(windows) != len(rows) {
		return fmt.Errorf("have %d window indexes for %d rows", len(windows), len(rows))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	record := make([]string, 1+features.NumFeatures)
	for i, row := range rows {
		if len(row) != features.NumFeatures {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), features.NumFeatures)
		}
		idx := i
		if windows != nil {
			idx = windows[i]
		}
		record[0] = strconv.Itoa(idx)
		for j, v := range row {
			record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFeatureCSV reads a table written by WriteFeatureCSV. The header must
// match the canonical key list exactly.
func ReadFeatureCSV(r io.Reader) (windows []int, rows features.Table, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 1 + features.NumFeatures
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	want := Header()
	for i := range want {
		if header[i] != want[i] {
			return nil, nil, fmt.Errorf("column %d is %q, want %q (schema %s)",
				i, header[i], want[i], features.SchemaVersion)
		}
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: window %q: %w", line, rec[0], err)
		}
		row := features.NewVector()
		for j := range row {
			row[j], err = strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %s: %w", line, want[j+1], err)
			}
		}
		windows = append(windows, idx)
		rows = append(rows, row)
	}
	return windows, rows, nil
}
