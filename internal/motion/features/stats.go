package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/motion.report/internal/motion"
)

// DefaultHistogramBins is the bin count used by Entropy.
const DefaultHistogramBins = 10

// The statistics below return (0, motion.ErrDegenerateRange) instead of
// NaN or Inf whenever a range or denominator is zero, and
// (0, motion.ErrInsufficientData) for an empty series.

// Mean returns the arithmetic mean.
func Mean(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	return stat.Mean(d, nil), nil
}

// Std returns the population standard deviation (divide by n).
func Std(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	return stat.PopStdDev(d, nil), nil
}

// Median returns the median; even-length series average the middle pair.
func Median(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	s := sorted(d)
	n := len(s)
	if n%2 == 1 {
		return s[n/2], nil
	}
	return (s[n/2-1] + s[n/2]) / 2, nil
}

// MAD returns the mean absolute deviation from the median.
func MAD(d []float64) (float64, error) {
	med, err := Median(d)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range d {
		sum += math.Abs(v - med)
	}
	return sum / float64(len(d)), nil
}

// Max returns the largest value.
func Max(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	return floats.Max(d), nil
}

// Min returns the smallest value.
func Min(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	return floats.Min(d), nil
}

// Energy returns the mean of squares.
func Energy(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	return floats.Dot(d, d) / float64(len(d)), nil
}

// IQR returns Q3 - Q1 where Qp is the sorted element at index
// floor(p*n).
func IQR(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	s := sorted(d)
	return floorQuantile(s, 0.75) - floorQuantile(s, 0.25), nil
}

func floorQuantile(sorted []float64, p float64) float64 {
	i := int(math.Floor(p * float64(len(sorted))))
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

// Entropy returns the base-2 Shannon entropy of an equal-width histogram
// with the given number of bins spanning [min, max]. Empty bins contribute
// nothing. A constant series has no range and is degenerate, as is one
// holding NaN or infinite values.
func Entropy(d []float64, bins int) (float64, error) {
	if len(d) == 0 || bins < 1 {
		return 0, motion.ErrInsufficientData
	}
	s := sorted(d)
	lo, hi := s[0], s[len(s)-1]
	if floats.HasNaN(s) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || hi == lo {
		return 0, motion.ErrDegenerateRange
	}

	dividers := make([]float64, bins+1)
	if math.IsInf(hi-lo, 0) {
		// The width overflows; interpolate each edge instead.
		for i := range dividers {
			f := float64(i) / float64(bins)
			dividers[i] = lo*(1-f) + hi*f
		}
	} else {
		floats.Span(dividers, lo, hi)
	}
	// Histogram bins are half-open; nudge the top edge so max lands in the
	// last bin.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, s, nil)
	floats.Scale(1/float64(len(s)), counts)
	return stat.Entropy(counts) / math.Ln2, nil
}

// Correlation returns the Pearson correlation of x and y, clamped to
// [-1, 1]. Either series being constant is degenerate.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, motion.ErrInsufficientData
	}
	if stat.PopVariance(x, nil) == 0 || stat.PopVariance(y, nil) == 0 {
		return 0, motion.ErrDegenerateRange
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, motion.ErrDegenerateRange
	}
	return math.Max(-1, math.Min(1, r)), nil
}

// SMA returns the signal magnitude area: mean of |x|+|y|+|z| per sample.
func SMA(t motion.Triple) (float64, error) {
	n := t.Len()
	if n == 0 {
		return 0, motion.ErrInsufficientData
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(t[0][i]) + math.Abs(t[1][i]) + math.Abs(t[2][i])
	}
	return sum / float64(n), nil
}

// MagSMA is SMA for a single series: the mean absolute value.
func MagSMA(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	var sum float64
	for _, v := range d {
		sum += math.Abs(v)
	}
	return sum / float64(len(d)), nil
}

// Skewness returns the third standardised central moment.
func Skewness(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	sd := stat.PopStdDev(d, nil)
	if sd == 0 {
		return 0, motion.ErrDegenerateRange
	}
	return stat.Moment(3, d, nil) / (sd * sd * sd), nil
}

// Kurtosis returns the excess kurtosis: fourth standardised central
// moment minus 3.
func Kurtosis(d []float64) (float64, error) {
	if len(d) == 0 {
		return 0, motion.ErrInsufficientData
	}
	v := stat.PopVariance(d, nil)
	if v == 0 {
		return 0, motion.ErrDegenerateRange
	}
	return stat.Moment(4, d, nil)/(v*v) - 3, nil
}

// MeanFreq returns the magnitude-weighted mean bin index of a magnitude
// spectrum.
func MeanFreq(mags []float64) (float64, error) {
	if len(mags) == 0 {
		return 0, motion.ErrInsufficientData
	}
	total := floats.Sum(mags)
	if total == 0 {
		return 0, motion.ErrDegenerateRange
	}
	var weighted float64
	for k, m := range mags {
		weighted += float64(k) * m
	}
	return weighted / total, nil
}

// MaxInd returns the index of the largest magnitude bin.
func MaxInd(mags []float64) (float64, error) {
	if len(mags) == 0 {
		return 0, motion.ErrInsufficientData
	}
	return float64(floats.MaxIdx(mags)), nil
}

// BandEnergy returns the mean squared magnitude over band, scaled by the
// spectrum's bin width. Bins past the end of mags are ignored; a band with
// no bins left is degenerate.
func BandEnergy(mags []float64, band Band, binWidth float64) (float64, error) {
	lo, hi := band.Lo-1, band.Hi
	if lo < 0 {
		lo = 0
	}
	if hi > len(mags) {
		hi = len(mags)
	}
	if hi <= lo {
		return 0, motion.ErrDegenerateRange
	}
	seg := mags[lo:hi]
	return floats.Dot(seg, seg) / float64(len(seg)) * binWidth, nil
}

func sorted(d []float64) []float64 {
	s := make([]float64, len(d))
	copy(s, d)
	sort.Float64s(s)
	return s
}
