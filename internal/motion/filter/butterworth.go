// Package filter conditions one sensor axis at a time: median despiking,
// Butterworth low-pass noise removal, and gravity/body separation.
//
// Every function here is a pure function of its input series. Recursive
// filter state is an explicit State value created per call, never a field
// that survives between series.
package filter

import (
	"fmt"
	"math"
)

// Biquad holds normalised coefficients of a 2nd-order direct-form recursive
// filter:
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// State is the delay line of a Biquad: the two previous inputs and outputs.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// LowPass designs a 2nd-order Butterworth low-pass section for the given
// cutoff using the bilinear transform with frequency pre-warping.
func LowPass(cutoffHz, sampleRateHz float64) (Biquad, error) {
	if sampleRateHz <= 0 {
		return Biquad{}, fmt.Errorf("sample rate must be positive, got %g", sampleRateHz)
	}
	if cutoffHz <= 0 || cutoffHz >= sampleRateHz/2 {
		return Biquad{}, fmt.Errorf("cutoff %g Hz outside (0, %g) for sample rate %g Hz",
			cutoffHz, sampleRateHz/2, sampleRateHz)
	}

	// Pre-warped analog cutoff, normalised so the bilinear constant is 1.
	k := math.Tan(math.Pi * cutoffHz / sampleRateHz)
	k2 := k * k
	norm := 1 / (1 + math.Sqrt2*k + k2)

	b0 := k2 * norm
	return Biquad{
		B0: b0,
		B1: 2 * b0,
		B2: b0,
		A1: 2 * (k2 - 1) * norm,
		A2: (1 - math.Sqrt2*k + k2) * norm,
	}, nil
}

// DCGain returns the filter's response to a constant input.
func (f Biquad) DCGain() float64 {
	return (f.B0 + f.B1 + f.B2) / (1 + f.A1 + f.A2)
}

// Step advances the filter by one sample and returns the new state and
// output.
func (f Biquad) Step(s State, x float64) (State, float64) {
	y := f.B0*x + f.B1*s.X1 + f.B2*s.X2 - f.A1*s.Y1 - f.A2*s.Y2
	return State{X1: x, X2: s.X1, Y1: y, Y2: s.Y1}, y
}

// SteadyState returns the state the filter would settle into after an
// infinitely long constant input x.
func (f Biquad) SteadyState(x float64) State {
	y := f.DCGain() * x
	return State{X1: x, X2: x, Y1: y, Y2: y}
}

// Apply filters in and returns a new series of the same length. The state
// is reset for every call to the steady state of in[0], so a constant
// series passes through without a start-up transient.
func (f Biquad) Apply(in []float64) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}
	s := f.SteadyState(in[0])
	for i, x := range in {
		s, out[i] = f.Step(s, x)
	}
	return out
}
