package filter

import (
	"fmt"

	"github.com/banshee-data/motion.report/internal/motion"
)

// DefaultMedianSize is the despiking window length.
const DefaultMedianSize = 3

// Chain is the per-axis conditioning chain: median despike, low-pass noise
// removal, then a second low-pass pass that isolates gravity.
type Chain struct {
	MedianSize int
	Noise      Biquad
	Gravity    Biquad
}

// NewChain designs both low-pass stages for the given sample rate.
func NewChain(sampleRateHz, noiseCutoffHz, gravityCutoffHz float64) (Chain, error) {
	if gravityCutoffHz >= noiseCutoffHz {
		return Chain{}, fmt.Errorf("gravity cutoff %g Hz must be below noise cutoff %g Hz",
			gravityCutoffHz, noiseCutoffHz)
	}
	noise, err := LowPass(noiseCutoffHz, sampleRateHz)
	if err != nil {
		return Chain{}, fmt.Errorf("noise filter: %w", err)
	}
	gravity, err := LowPass(gravityCutoffHz, sampleRateHz)
	if err != nil {
		return Chain{}, fmt.Errorf("gravity filter: %w", err)
	}
	return Chain{MedianSize: DefaultMedianSize, Noise: noise, Gravity: gravity}, nil
}

// Split conditions one axis series and returns its body and gravity
// components. Both have the same length as in, and body+gravity equals the
// noise-filtered signal.
func (c Chain) Split(in []float64) (body, gravity []float64) {
	clean := c.Noise.Apply(Median(in, c.MedianSize))
	gravity = c.Gravity.Apply(clean)
	body = make([]float64, len(clean))
	for i := range clean {
		body[i] = clean[i] - gravity[i]
	}
	return body, gravity
}

// SplitTriple runs Split on each axis independently.
func (c Chain) SplitTriple(in motion.Triple) (body, gravity motion.Triple) {
	for a := range in {
		body[a], gravity[a] = c.Split(in[a])
	}
	return body, gravity
}
