package pipeline

import (
	"fmt"

	"github.com/banshee-data/motion.report/internal/motion/features"
)

// Params is the configuration surface of the core. internal/config loads
// it from JSON; the zero value is not valid, start from DefaultParams.
type Params struct {
	SamplingRateHz      float64
	WindowSize          int
	SlideSize           int
	ButterworthCutoffHz float64
	GravityCutoffHz     float64
	AROrder             int
	HistogramBins       int
	FrequencyBandCount  int
	// Workers bounds concurrent windows in ExtractBatch; 0 means
	// GOMAXPROCS.
	Workers int
}

// DefaultParams returns the stock configuration: 50 Hz, 128-sample
// windows with 50% overlap, 20 Hz noise and 0.3 Hz gravity cutoffs.
func DefaultParams() Params {
	return Params{
		SamplingRateHz:      50,
		WindowSize:          128,
		SlideSize:           64,
		ButterworthCutoffHz: 20,
		GravityCutoffHz:     0.3,
		AROrder:             features.AROrder,
		HistogramBins:       features.DefaultHistogramBins,
		FrequencyBandCount:  len(features.Bands),
	}
}

// Validate checks the parameters against each other and against the
// fixed feature schema.
func (p Params) Validate() error {
	if p.SamplingRateHz <= 0 {
		return fmt.Errorf("sampling rate must be positive, got %g", p.SamplingRateHz)
	}
	if p.WindowSize < 8 || p.WindowSize%2 != 0 {
		return fmt.Errorf("window size must be an even number >= 8, got %d", p.WindowSize)
	}
	if p.SlideSize < 1 || p.SlideSize > p.WindowSize {
		return fmt.Errorf("slide size must be in [1, %d], got %d", p.WindowSize, p.SlideSize)
	}
	nyquist := p.SamplingRateHz / 2
	if p.ButterworthCutoffHz <= 0 || p.ButterworthCutoffHz >= nyquist {
		return fmt.Errorf("butterworth cutoff must be in (0, %g), got %g", nyquist, p.ButterworthCutoffHz)
	}
	if p.GravityCutoffHz <= 0 || p.GravityCutoffHz >= p.ButterworthCutoffHz {
		return fmt.Errorf("gravity cutoff must be in (0, %g), got %g", p.ButterworthCutoffHz, p.GravityCutoffHz)
	}
	if p.AROrder != features.AROrder {
		return fmt.Errorf("AR order is fixed at %d by schema %s, got %d", features.AROrder, features.SchemaVersion, p.AROrder)
	}
	if p.FrequencyBandCount != len(features.Bands) {
		return fmt.Errorf("frequency band count is fixed at %d by schema %s, got %d",
			len(features.Bands), features.SchemaVersion, p.FrequencyBandCount)
	}
	if p.HistogramBins < 2 {
		return fmt.Errorf("histogram bins must be >= 2, got %d", p.HistogramBins)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", p.Workers)
	}
	return nil
}
