package features

import (
	"fmt"

	"github.com/banshee-data/motion.report/internal/motion"
)

// SchemaVersion identifies the canonical key list below.
const SchemaVersion = "har-561/v1"

// NumFeatures is the length of the canonical key list.
const NumFeatures = 561

// Signal group prefixes.
const (
	PrefixBodyAcc          = "tBodyAcc"
	PrefixGravityAcc       = "tGravityAcc"
	PrefixBodyAccJerk      = "tBodyAccJerk"
	PrefixBodyGyro         = "tBodyGyro"
	PrefixBodyGyroJerk     = "tBodyGyroJerk"
	PrefixBodyAccMag       = "tBodyAccMag"
	PrefixGravityAccMag    = "tGravityAccMag"
	PrefixBodyAccJerkMag   = "tBodyAccJerkMag"
	PrefixBodyGyroMag      = "tBodyGyroMag"
	PrefixBodyGyroJerkMag  = "tBodyGyroJerkMag"
	PrefixFBodyAcc         = "fBodyAcc"
	PrefixFBodyAccJerk     = "fBodyAccJerk"
	PrefixFBodyGyro        = "fBodyGyro"
	PrefixFBodyAccMag      = "fBodyAccMag"
	PrefixFBodyAccJerkMag  = "fBodyAccJerkMag"
	PrefixFBodyGyroMag     = "fBodyGyroMag"
	PrefixFBodyGyroJerkMag = "fBodyGyroJerkMag"
)

// Group prefixes in canonical order.
var (
	timeTriaxialGroups = []string{PrefixBodyAcc, PrefixGravityAcc, PrefixBodyAccJerk, PrefixBodyGyro, PrefixBodyGyroJerk}
	timeMagGroups      = []string{PrefixBodyAccMag, PrefixGravityAccMag, PrefixBodyAccJerkMag, PrefixBodyGyroMag, PrefixBodyGyroJerkMag}
	freqTriaxialGroups = []string{PrefixFBodyAcc, PrefixFBodyAccJerk, PrefixFBodyGyro}
	freqMagGroups      = []string{PrefixFBodyAccMag, PrefixFBodyAccJerkMag, PrefixFBodyGyroMag, PrefixFBodyGyroJerkMag}
)

// Band is an inclusive, 1-based range of spectrum bins.
type Band struct {
	Lo, Hi int
}

// String renders the band the way it appears in feature names, e.g. "1,8".
func (b Band) String() string { return fmt.Sprintf("%d,%d", b.Lo, b.Hi) }

// Bands are the 14 fixed band-energy ranges over a 64-bin half spectrum:
// eight bands of 8 bins, four of 16, two of 24.
var Bands = [14]Band{
	{1, 8}, {9, 16}, {17, 24}, {25, 32}, {33, 40}, {41, 48}, {49, 56}, {57, 64},
	{1, 16}, {17, 32}, {33, 48}, {49, 64},
	{1, 24}, {25, 48},
}

// AROrder is the number of autoregressive coefficients per series.
const AROrder = 4

// Angle feature keys.
const (
	AngleBodyAccMean      = "angle(tBodyAccMean,gravityMean)"
	AngleBodyAccJerkMean  = "angle(tBodyAccJerkMean,gravityMean)"
	AngleBodyGyroMean     = "angle(tBodyGyroMean,gravityMean)"
	AngleBodyGyroJerkMean = "angle(tBodyGyroJerkMean,gravityMean)"
	AngleXGravityMean     = "angle(x,gravityMean)"
	AngleYGravityMean     = "angle(y,gravityMean)"
	AngleZGravityMean     = "angle(z,gravityMean)"
)

var angleKeys = []string{
	AngleBodyAccMean, AngleBodyAccJerkMean, AngleBodyGyroMean, AngleBodyGyroJerkMean,
	AngleXGravityMean, AngleYGravityMean, AngleZGravityMean,
}

// Key builds "<prefix>-<stat>-<axis>".
func Key(prefix, stat string, axis motion.Axis) string {
	return prefix + "-" + stat + "-" + axis.String()
}

// MagKey builds "<prefix>-<stat>".
func MagKey(prefix, stat string) string {
	return prefix + "-" + stat
}

func arKey(prefix string, axis motion.Axis, order int) string {
	return fmt.Sprintf("%s-arCoeff()-%s,%d", prefix, axis, order)
}

func arMagKey(prefix string, order int) string {
	return fmt.Sprintf("%s-arCoeff()%d", prefix, order)
}

func correlationKey(prefix string, a, b motion.Axis) string {
	return fmt.Sprintf("%s-correlation()-%s,%s", prefix, a, b)
}

func bandKey(prefix string, band Band, axis motion.Axis) string {
	return fmt.Sprintf("%s-bandsEnergy()-%s-%s", prefix, band, axis)
}

var axisPairs = [3][2]motion.Axis{
	{motion.AxisX, motion.AxisY},
	{motion.AxisX, motion.AxisZ},
	{motion.AxisY, motion.AxisZ},
}

// Statistic names shared by several groups.
const (
	statMean     = "mean()"
	statStd      = "std()"
	statMad      = "mad()"
	statMax      = "max()"
	statMin      = "min()"
	statSma      = "sma()"
	statEnergy   = "energy()"
	statIqr      = "iqr()"
	statEntropy  = "entropy()"
	statMaxInds  = "maxInds"
	statMeanFreq = "meanFreq()"
	statSkewness = "skewness()"
	statKurtosis = "kurtosis()"
)

var basicStats = []string{statMean, statStd, statMad, statMax, statMin}

var timeMagStats = []string{
	statMean, statStd, statMad, statMax, statMin,
	statSma, statEnergy, statIqr, statEntropy,
}

var freqMagStats = []string{
	statMean, statStd, statMad, statMax, statMin,
	statSma, statEnergy, statIqr, statEntropy,
	statMaxInds, statMeanFreq, statSkewness, statKurtosis,
}

var (
	keys     = buildKeys()
	keyIndex = buildIndex(keys)
)

func init() {
	if len(keys) != NumFeatures {
		panic(fmt.Sprintf("features: canonical key list has %d entries, want %d", len(keys), NumFeatures))
	}
	if len(keyIndex) != NumFeatures {
		panic("features: canonical key list has duplicate entries")
	}
}

func buildKeys() []string {
	out := make([]string, 0, NumFeatures)
	perAxis := func(prefix, stat string) {
		for _, a := range motion.Axes {
			out = append(out, Key(prefix, stat, a))
		}
	}

	for _, p := range timeTriaxialGroups {
		for _, s := range basicStats {
			perAxis(p, s)
		}
		out = append(out, MagKey(p, statSma))
		perAxis(p, statEnergy)
		perAxis(p, statIqr)
		perAxis(p, statEntropy)
		for _, a := range motion.Axes {
			for o := 1; o <= AROrder; o++ {
				out = append(out, arKey(p, a, o))
			}
		}
		for _, pair := range axisPairs {
			out = append(out, correlationKey(p, pair[0], pair[1]))
		}
	}

	for _, p := range timeMagGroups {
		for _, s := range timeMagStats {
			out = append(out, MagKey(p, s))
		}
		for o := 1; o <= AROrder; o++ {
			out = append(out, arMagKey(p, o))
		}
	}

	for _, p := range freqTriaxialGroups {
		for _, s := range basicStats {
			perAxis(p, s)
		}
		out = append(out, MagKey(p, statSma))
		perAxis(p, statEnergy)
		perAxis(p, statIqr)
		perAxis(p, statEntropy)
		perAxis(p, statMaxInds)
		perAxis(p, statMeanFreq)
		for _, a := range motion.Axes {
			out = append(out, Key(p, statSkewness, a), Key(p, statKurtosis, a))
		}
		for _, a := range motion.Axes {
			for _, b := range Bands {
				out = append(out, bandKey(p, b, a))
			}
		}
	}

	for _, p := range freqMagGroups {
		for _, s := range freqMagStats {
			out = append(out, MagKey(p, s))
		}
	}

	return append(out, angleKeys...)
}

func buildIndex(ks []string) map[string]int {
	idx := make(map[string]int, len(ks))
	for i, k := range ks {
		idx[k] = i
	}
	return idx
}

// Keys returns a copy of the canonical key list in column order.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Index returns the column of key, or false if key is not canonical.
func Index(key string) (int, bool) {
	i, ok := keyIndex[key]
	return i, ok
}
