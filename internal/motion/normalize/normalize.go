// Package normalize rescales every feature column of a batch to [-1, 1].
//
// Normalisation is a barrier: Fit must see every row before Apply emits
// any value. Columns are independent of each other.
package normalize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/motion.report/internal/motion"
	"github.com/banshee-data/motion.report/internal/motion/features"
)

// Range is the observed [Min, Max] of one column.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Constant reports whether the column had a single value.
func (r Range) Constant() bool { return r.Max == r.Min }

// Scale maps v into [-1, 1]. Constant columns map to 0; values outside
// the range (when re-applying a stored range to new data) are clamped.
func (r Range) Scale(v float64) float64 {
	if r.Constant() {
		return 0
	}
	s := -1 + 2*(v-r.Min)/(r.Max-r.Min)
	return math.Max(-1, math.Min(1, s))
}

// Fit returns the per-column range over rows.
func Fit(rows features.Table) ([]Range, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("normalize empty batch: %w", motion.ErrInsufficientData)
	}
	cols := len(rows[0])
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(r), cols)
		}
	}

	ranges := make([]Range, cols)
	column := make([]float64, len(rows))
	for c := range ranges {
		for i, r := range rows {
			column[i] = r[c]
		}
		ranges[c] = Range{Min: floats.Min(column), Max: floats.Max(column)}
	}
	return ranges, nil
}

// Apply rescales rows with previously fitted ranges. Input rows are not
// modified.
func Apply(rows features.Table, ranges []Range) (features.Table, error) {
	out := make(features.Table, len(rows))
	for i, r := range rows {
		if len(r) != len(ranges) {
			return nil, fmt.Errorf("row %d has %d columns, ranges cover %d", i, len(r), len(ranges))
		}
		scaled := make(features.Vector, len(r))
		for c, v := range r {
			scaled[c] = ranges[c].Scale(v)
		}
		out[i] = scaled
	}
	return out, nil
}

// Batch fits and applies in one pass. Within the batch every
// non-constant column spans exactly [-1, 1] and constant columns are 0.
func Batch(rows features.Table) (features.Table, []Range, error) {
	ranges, err := Fit(rows)
	if err != nil {
		return nil, nil, err
	}
	out, err := Apply(rows, ranges)
	if err != nil {
		return nil, nil, err
	}
	return out, ranges, nil
}
