// Package derive computes time derivatives (jerk) and Euclidean magnitudes
// of conditioned axis series.
package derive

import (
	"fmt"
	"math"

	"github.com/banshee-data/motion.report/internal/motion"
)

// Jerk differentiates s against its millisecond timestamps:
//
//	jerk[i-1] = (s[i] - s[i-1]) / ((ts[i] - ts[i-1]) / 1000)
//
// The result has len(s)-1 entries. A zero (or negative) time step yields
// motion.ErrDegenerateTimestamp.
func Jerk(s []float64, ts []int64) ([]float64, error) {
	if len(s) != len(ts) {
		return nil, fmt.Errorf("series length %d does not match %d timestamps", len(s), len(ts))
	}
	if len(s) < 2 {
		return nil, fmt.Errorf("jerk needs at least 2 samples, have %d: %w", len(s), motion.ErrInsufficientData)
	}
	out := make([]float64, len(s)-1)
	for i := 1; i < len(s); i++ {
		dt := ts[i] - ts[i-1]
		if dt <= 0 {
			return nil, fmt.Errorf("timestamps %d and %d at index %d: %w",
				ts[i-1], ts[i], i, motion.ErrDegenerateTimestamp)
		}
		out[i-1] = (s[i] - s[i-1]) / (float64(dt) / 1000)
	}
	return out, nil
}

// JerkTriple runs Jerk on every axis.
func JerkTriple(t motion.Triple, ts []int64) (motion.Triple, error) {
	var out motion.Triple
	for a := range t {
		j, err := Jerk(t[a], ts)
		if err != nil {
			return motion.Triple{}, fmt.Errorf("axis %s: %w", motion.Axes[a], err)
		}
		out[a] = j
	}
	return out, nil
}

// Magnitude returns sqrt(x^2 + y^2 + z^2) per sample. The three series must
// be the same length; the result is never negative.
func Magnitude(t motion.Triple) []float64 {
	n := t.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Sqrt(t[0][i]*t[0][i] + t[1][i]*t[1][i] + t[2][i]*t[2][i])
	}
	return out
}
