// Package testutil provides shared test utilities and fixtures.
//
// This package centralises synthetic sensor streams so the stage packages
// under internal/motion test against the same deterministic inputs.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/motion.report/internal/motion"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertFinite fails the test if any value is NaN or infinite.
func AssertFinite(t *testing.T, name string, values []float64) {
	t.Helper()
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s[%d] = %v, want finite", name, i, v)
		}
	}
}

// PeriodMs returns the sample period in whole milliseconds for rateHz.
func PeriodMs(rateHz float64) int64 {
	return int64(math.Round(1000 / rateHz))
}

// Timestamps returns n evenly spaced millisecond timestamps starting at 0.
func Timestamps(n int, rateHz float64) []int64 {
	period := PeriodMs(rateHz)
	ts := make([]int64, n)
	for i := range ts {
		ts[i] = int64(i) * period
	}
	return ts
}

// ConstantSamples returns n samples all equal to v.
func ConstantSamples(n int, v motion.Vec3, rateHz float64) []motion.Sample {
	return FuncSamples(n, rateHz, func(int, float64) motion.Vec3 { return v })
}

// SineSamples returns n samples of offset plus a sinusoid of the given
// amplitude and frequency on every axis, phase-shifted per axis.
func SineSamples(n int, offset motion.Vec3, amp, freqHz, rateHz float64) []motion.Sample {
	return FuncSamples(n, rateHz, func(_ int, t float64) motion.Vec3 {
		var v motion.Vec3
		for a := range v {
			phase := float64(a) * math.Pi / 3
			v[a] = offset[a] + amp*math.Sin(2*math.Pi*freqHz*t+phase)
		}
		return v
	})
}

// FuncSamples builds n samples from f, which receives the sample index
// and the sample time in seconds.
func FuncSamples(n int, rateHz float64, f func(i int, t float64) motion.Vec3) []motion.Sample {
	ts := Timestamps(n, rateHz)
	out := make([]motion.Sample, n)
	for i := range out {
		v := f(i, float64(ts[i])/1000)
		out[i] = motion.Sample{X: v[0], Y: v[1], Z: v[2], Timestamp: ts[i]}
	}
	return out
}

// Window wraps samples in a window starting at index 0.
func Window(samples []motion.Sample) motion.Window {
	return motion.Window{Samples: samples}
}

// Sine returns n samples of amp*sin(2*pi*freqHz*t) at rateHz.
func Sine(n int, amp, freqHz, rateHz float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freqHz*float64(i)/rateHz)
	}
	return out
}
