package features

import (
	"errors"
	"fmt"

	"github.com/banshee-data/motion.report/internal/motion"
)

// Triaxial is a conditioned 3-axis time-domain signal and its magnitude.
type Triaxial struct {
	Axes motion.Triple
	Mag  []float64
}

// Spectrum3 holds one-sided magnitude spectra for three axes.
type Spectrum3 struct {
	Axes     motion.Triple
	BinWidth float64
}

// Conditioned is everything the extractor reads for one window.
type Conditioned struct {
	BodyAcc      Triaxial
	GravityAcc   Triaxial
	BodyAccJerk  Triaxial
	BodyGyro     Triaxial
	BodyGyroJerk Triaxial

	FBodyAcc     Spectrum3
	FBodyAccJerk Spectrum3
	FBodyGyro    Spectrum3

	FBodyAccMag      []float64
	FBodyAccJerkMag  []float64
	FBodyGyroMag     []float64
	FBodyGyroJerkMag []float64
}

// Options tune the extractor. The zero value uses the defaults.
type Options struct {
	HistogramBins int
}

func (o Options) histogramBins() int {
	if o.HistogramBins <= 0 {
		return DefaultHistogramBins
	}
	return o.HistogramBins
}

// Diagnostics summarises one extraction.
type Diagnostics struct {
	// Written counts keys assigned by the extractor; a complete run
	// writes NumFeatures.
	Written int
	// Defaulted lists keys written as 0 because their statistic was
	// degenerate or an angle operand was a zero vector.
	Defaulted []string
}

// Extract computes every canonical feature for one conditioned window.
// It never fails: degenerate statistics are written as 0 and listed in
// the returned Diagnostics.
func Extract(c Conditioned, opts Options) (Vector, Diagnostics) {
	w := &writer{vec: NewVector(), bins: opts.histogramBins()}

	w.timeTriaxial(PrefixBodyAcc, c.BodyAcc.Axes)
	w.timeTriaxial(PrefixGravityAcc, c.GravityAcc.Axes)
	w.timeTriaxial(PrefixBodyAccJerk, c.BodyAccJerk.Axes)
	w.timeTriaxial(PrefixBodyGyro, c.BodyGyro.Axes)
	w.timeTriaxial(PrefixBodyGyroJerk, c.BodyGyroJerk.Axes)

	w.timeMag(PrefixBodyAccMag, c.BodyAcc.Mag)
	w.timeMag(PrefixGravityAccMag, c.GravityAcc.Mag)
	w.timeMag(PrefixBodyAccJerkMag, c.BodyAccJerk.Mag)
	w.timeMag(PrefixBodyGyroMag, c.BodyGyro.Mag)
	w.timeMag(PrefixBodyGyroJerkMag, c.BodyGyroJerk.Mag)

	w.freqTriaxial(PrefixFBodyAcc, c.FBodyAcc)
	w.freqTriaxial(PrefixFBodyAccJerk, c.FBodyAccJerk)
	w.freqTriaxial(PrefixFBodyGyro, c.FBodyGyro)

	w.freqMag(PrefixFBodyAccMag, c.FBodyAccMag)
	w.freqMag(PrefixFBodyAccJerkMag, c.FBodyAccJerkMag)
	w.freqMag(PrefixFBodyGyroMag, c.FBodyGyroMag)
	w.freqMag(PrefixFBodyGyroJerkMag, c.FBodyGyroJerkMag)

	w.angles(c)

	return w.vec, w.diag
}

// writer accumulates feature values and diagnostics for one window.
type writer struct {
	vec  Vector
	bins int
	diag Diagnostics
}

// put stores val under key. A non-nil err means the value could not be
// computed, so 0 is stored instead.
func (w *writer) put(key string, val float64, err error) {
	i, ok := keyIndex[key]
	if !ok {
		panic(fmt.Sprintf("features: extractor wrote non-canonical key %q", key))
	}
	if err != nil {
		val = 0
		w.diag.Defaulted = append(w.diag.Defaulted, key)
	}
	w.vec[i] = val
	w.diag.Written++
}

type statFunc func([]float64) (float64, error)

var basicStatFuncs = map[string]statFunc{
	statMean: Mean,
	statStd:  Std,
	statMad:  MAD,
	statMax:  Max,
	statMin:  Min,
}

// common writes the statistics shared by every group: the five basic
// statistics, sma, energy, iqr and entropy.
func (w *writer) common(key func(stat string) string, d []float64) {
	for _, s := range basicStats {
		v, err := basicStatFuncs[s](d)
		w.put(key(s), v, err)
	}
	v, err := Energy(d)
	w.put(key(statEnergy), v, err)
	v, err = IQR(d)
	w.put(key(statIqr), v, err)
	v, err = Entropy(d, w.bins)
	w.put(key(statEntropy), v, err)
}

func (w *writer) timeTriaxial(prefix string, t motion.Triple) {
	for _, a := range motion.Axes {
		w.common(func(s string) string { return Key(prefix, s, a) }, t[a])
	}
	v, err := SMA(t)
	w.put(MagKey(prefix, statSma), v, err)

	for _, a := range motion.Axes {
		ar, err := arCoefficients(t[a])
		for o := 1; o <= AROrder; o++ {
			w.put(arKey(prefix, a, o), ar[o-1], err)
		}
	}
	for _, pair := range axisPairs {
		v, err := Correlation(t[pair[0]], t[pair[1]])
		w.put(correlationKey(prefix, pair[0], pair[1]), v, err)
	}
}

func (w *writer) timeMag(prefix string, d []float64) {
	w.common(func(s string) string { return MagKey(prefix, s) }, d)
	v, err := MagSMA(d)
	w.put(MagKey(prefix, statSma), v, err)

	ar, err := arCoefficients(d)
	for o := 1; o <= AROrder; o++ {
		w.put(arMagKey(prefix, o), ar[o-1], err)
	}
}

func (w *writer) freqTriaxial(prefix string, s Spectrum3) {
	for _, a := range motion.Axes {
		mags := s.Axes[a]
		key := func(stat string) string { return Key(prefix, stat, a) }
		w.common(key, mags)
		w.spectralShape(key, mags)
		for _, b := range Bands {
			v, err := BandEnergy(mags, b, s.BinWidth)
			w.put(bandKey(prefix, b, a), v, err)
		}
	}
	v, err := SMA(s.Axes)
	w.put(MagKey(prefix, statSma), v, err)
}

func (w *writer) freqMag(prefix string, mags []float64) {
	key := func(stat string) string { return MagKey(prefix, stat) }
	w.common(key, mags)
	w.spectralShape(key, mags)
	v, err := MagSMA(mags)
	w.put(MagKey(prefix, statSma), v, err)
}

// spectralShape writes maxInds, meanFreq, skewness and kurtosis.
func (w *writer) spectralShape(key func(stat string) string, mags []float64) {
	v, err := MaxInd(mags)
	w.put(key(statMaxInds), v, err)
	v, err = MeanFreq(mags)
	w.put(key(statMeanFreq), v, err)
	v, err = Skewness(mags)
	w.put(key(statSkewness), v, err)
	v, err = Kurtosis(mags)
	w.put(key(statKurtosis), v, err)
}

func (w *writer) angles(c Conditioned) {
	gravity := c.GravityAcc.Axes.Means()
	pairs := []struct {
		key string
		vec motion.Vec3
	}{
		{AngleBodyAccMean, c.BodyAcc.Axes.Means()},
		{AngleBodyAccJerkMean, c.BodyAccJerk.Axes.Means()},
		{AngleBodyGyroMean, c.BodyGyro.Axes.Means()},
		{AngleBodyGyroJerkMean, c.BodyGyroJerk.Axes.Means()},
		{AngleXGravityMean, UnitX},
		{AngleYGravityMean, UnitY},
		{AngleZGravityMean, UnitZ},
	}
	for _, p := range pairs {
		v, err := Angle(p.vec, gravity)
		w.put(p.key, v, err)
	}
}

// arCoefficients always returns AROrder finite values. Stages Burg could
// not estimate already hold 0, so only a too-short series is an error.
func arCoefficients(d []float64) ([]float64, error) {
	ar, _, err := Burg(d, AROrder)
	switch {
	case err == nil, errors.Is(err, motion.ErrDegenerateRange):
		return ar, nil
	default:
		return make([]float64, AROrder), err
	}
}
