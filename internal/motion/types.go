package motion

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Sample is one tri-axial sensor reading. Timestamp is in milliseconds.
type Sample struct {
	X, Y, Z   float64
	Timestamp int64
}

// Vector returns the reading as a Vec3.
func (s Sample) Vector() Vec3 {
	return Vec3{s.X, s.Y, s.Z}
}

// Window is an ordered, fixed-length run of consecutive samples.
// Windows share no mutable state; Samples must not be modified after
// the window is created.
type Window struct {
	// Start is the index of the first sample in the source stream.
	Start   int
	Samples []Sample
}

// Len returns the number of samples in the window.
func (w Window) Len() int { return len(w.Samples) }

// Axes splits the window into its three per-axis series.
func (w Window) Axes() (x, y, z []float64) {
	n := len(w.Samples)
	x = make([]float64, n)
	y = make([]float64, n)
	z = make([]float64, n)
	for i, s := range w.Samples {
		x[i], y[i], z[i] = s.X, s.Y, s.Z
	}
	return x, y, z
}

// Timestamps returns the sample timestamps in milliseconds.
func (w Window) Timestamps() []int64 {
	ts := make([]int64, len(w.Samples))
	for i, s := range w.Samples {
		ts[i] = s.Timestamp
	}
	return ts
}

// Axis identifies one of the three sensor axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the three axes in canonical order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// String returns the lowercase axis letter used in feature names.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Vec3 is a 3-component vector.
type Vec3 [3]float64

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Triple holds one series per axis.
type Triple [3][]float64

// Len returns the length of the x series (all three are equal length).
func (t Triple) Len() int { return len(t[0]) }

// Means returns the per-axis mean as a vector. Empty series yield zero.
func (t Triple) Means() Vec3 {
	var out Vec3
	for a := range t {
		if len(t[a]) == 0 {
			continue
		}
		out[a] = stat.Mean(t[a], nil)
	}
	return out
}
