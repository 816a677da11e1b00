// Package pipeline wires the motion stages into the two boundary
// operations: per-window feature extraction and per-batch normalisation.
//
// Every window is independent. ExtractBatch may run windows concurrently
// but always returns rows in window order; normalisation only starts once
// every row exists.
package pipeline

import (
	"fmt"
	"math"

	"github.com/banshee-data/motion.report/internal/motion"
	"github.com/banshee-data/motion.report/internal/motion/derive"
	"github.com/banshee-data/motion.report/internal/motion/features"
	"github.com/banshee-data/motion.report/internal/motion/filter"
	"github.com/banshee-data/motion.report/internal/motion/normalize"
	"github.com/banshee-data/motion.report/internal/motion/spectral"
	"github.com/banshee-data/motion.report/internal/motion/window"
)

// SensorSignal is one sensor's conditioned window: body, gravity and jerk
// per axis, plus their magnitudes. Jerk series are one sample shorter.
type SensorSignal struct {
	Body       motion.Triple
	Gravity    motion.Triple
	Jerk       motion.Triple
	BodyMag    []float64
	GravityMag []float64
	JerkMag    []float64
}

// Conditioned holds both sensors' conditioned signals for one window.
type Conditioned struct {
	Acc  SensorSignal
	Gyro SensorSignal
}

// Extractor runs the pipeline for a fixed set of parameters. It holds no
// per-window state and is safe for concurrent use.
type Extractor struct {
	params   Params
	chain    filter.Chain
	windower window.Windower
}

// New validates p and designs the filters.
func New(p Params) (*Extractor, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline params: %w", err)
	}
	chain, err := filter.NewChain(p.SamplingRateHz, p.ButterworthCutoffHz, p.GravityCutoffHz)
	if err != nil {
		return nil, err
	}
	w, err := window.New(p.WindowSize, p.SlideSize)
	if err != nil {
		return nil, err
	}
	return &Extractor{params: p, chain: chain, windower: w}, nil
}

// Params returns the parameters the extractor was built with.
func (e *Extractor) Params() Params { return e.params }

// Windower returns the extractor's windower.
func (e *Extractor) Windower() window.Windower { return e.windower }

// ExtractWindowFeatures is the single-window entry point with the default
// parameters and the given noise cutoff.
func ExtractWindowFeatures(acc, gyro motion.Window, cutoffHz float64) (features.Vector, error) {
	p := DefaultParams()
	p.ButterworthCutoffHz = cutoffHz
	e, err := New(p)
	if err != nil {
		return nil, err
	}
	v, _, err := e.ExtractWindowFeatures(acc, gyro)
	return v, err
}

// NormalizeBatch rescales every column of rows to [-1, 1].
func NormalizeBatch(rows features.Table) (features.Table, error) {
	out, _, err := normalize.Batch(rows)
	return out, err
}

// Condition runs the filter chain and derivative stages on both sensors.
func (e *Extractor) Condition(acc, gyro motion.Window) (Conditioned, error) {
	if err := e.checkWindow("accelerometer", acc); err != nil {
		return Conditioned{}, err
	}
	if err := e.checkWindow("gyroscope", gyro); err != nil {
		return Conditioned{}, err
	}
	a, err := e.conditionSensor(acc)
	if err != nil {
		return Conditioned{}, fmt.Errorf("accelerometer: %w", err)
	}
	g, err := e.conditionSensor(gyro)
	if err != nil {
		return Conditioned{}, fmt.Errorf("gyroscope: %w", err)
	}
	return Conditioned{Acc: a, Gyro: g}, nil
}

// ExtractWindowFeatures computes the full canonical feature vector for one
// pair of accelerometer and gyroscope windows. Only window-level failures
// (wrong length, non-finite samples, degenerate timestamps) are returned
// as errors; per-feature problems are defaulted to 0 and listed in the
// diagnostics.
func (e *Extractor) ExtractWindowFeatures(acc, gyro motion.Window) (features.Vector, features.Diagnostics, error) {
	c, err := e.Condition(acc, gyro)
	if err != nil {
		return nil, features.Diagnostics{}, err
	}
	vec, diag := features.Extract(e.spectra(c), features.Options{HistogramBins: e.params.HistogramBins})
	return vec, diag, nil
}

func (e *Extractor) checkWindow(sensor string, w motion.Window) error {
	if w.Len() < e.params.WindowSize {
		return fmt.Errorf("%s window has %d samples, want %d: %w",
			sensor, w.Len(), e.params.WindowSize, motion.ErrInsufficientData)
	}
	if w.Len() != e.params.WindowSize {
		return fmt.Errorf("%s window has %d samples, want %d", sensor, w.Len(), e.params.WindowSize)
	}
	for i, s := range w.Samples {
		for a, v := range s.Vector() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s sample %d %s=%g: %w",
					sensor, w.Start+i, motion.Axes[a], v, motion.ErrNonFiniteSample)
			}
		}
	}
	return nil
}

func (e *Extractor) conditionSensor(w motion.Window) (SensorSignal, error) {
	x, y, z := w.Axes()
	body, gravity := e.chain.SplitTriple(motion.Triple{x, y, z})
	jerk, err := derive.JerkTriple(body, w.Timestamps())
	if err != nil {
		return SensorSignal{}, err
	}
	return SensorSignal{
		Body:       body,
		Gravity:    gravity,
		Jerk:       jerk,
		BodyMag:    derive.Magnitude(body),
		GravityMag: derive.Magnitude(gravity),
		JerkMag:    derive.Magnitude(jerk),
	}, nil
}

// spectra runs the spectral transform and assembles the extractor input.
// Jerk groups get their own transform of the jerk signal.
func (e *Extractor) spectra(c Conditioned) features.Conditioned {
	return features.Conditioned{
		BodyAcc:      features.Triaxial{Axes: c.Acc.Body, Mag: c.Acc.BodyMag},
		GravityAcc:   features.Triaxial{Axes: c.Acc.Gravity, Mag: c.Acc.GravityMag},
		BodyAccJerk:  features.Triaxial{Axes: c.Acc.Jerk, Mag: c.Acc.JerkMag},
		BodyGyro:     features.Triaxial{Axes: c.Gyro.Body, Mag: c.Gyro.BodyMag},
		BodyGyroJerk: features.Triaxial{Axes: c.Gyro.Jerk, Mag: c.Gyro.JerkMag},

		FBodyAcc:     e.spectrum3(c.Acc.Body),
		FBodyAccJerk: e.spectrum3(c.Acc.Jerk),
		FBodyGyro:    e.spectrum3(c.Gyro.Body),

		FBodyAccMag:      spectral.MagnitudeSpectrum(c.Acc.BodyMag),
		FBodyAccJerkMag:  spectral.MagnitudeSpectrum(c.Acc.JerkMag),
		FBodyGyroMag:     spectral.MagnitudeSpectrum(c.Gyro.BodyMag),
		FBodyGyroJerkMag: spectral.MagnitudeSpectrum(c.Gyro.JerkMag),
	}
}

func (e *Extractor) spectrum3(t motion.Triple) features.Spectrum3 {
	var out features.Spectrum3
	for a := range t {
		s := spectral.Transform(t[a])
		out.Axes[a] = s.Magnitudes()
		out.BinWidth = s.BinWidth(e.params.SamplingRateHz)
	}
	return out
}
