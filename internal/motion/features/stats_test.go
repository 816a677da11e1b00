package features

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/motion.report/internal/motion"
)

func TestStatistics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func() (float64, error)
		want float64
	}{
		{"mean", func() (float64, error) { return Mean([]float64{1, 2, 3, 4}) }, 2.5},
		{"population std", func() (float64, error) { return Std([]float64{1, 2, 3, 4}) }, math.Sqrt(1.25)},
		{"median even", func() (float64, error) { return Median([]float64{4, 1, 3, 2}) }, 2.5},
		{"median odd", func() (float64, error) { return Median([]float64{9, 1, 5}) }, 5},
		{"mad", func() (float64, error) { return MAD([]float64{1, 2, 3, 4}) }, 1},
		{"max", func() (float64, error) { return Max([]float64{1, -7, 3}) }, 3},
		{"min", func() (float64, error) { return Min([]float64{1, -7, 3}) }, -7},
		{"energy", func() (float64, error) { return Energy([]float64{1, 2, 3}) }, 14.0 / 3},
		{"iqr floor index", func() (float64, error) { return IQR([]float64{8, 7, 6, 5, 4, 3, 2, 1}) }, 4},
		{"entropy uniform", func() (float64, error) {
			return Entropy([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 10)
		}, math.Log2(10)},
		{"entropy two clusters", func() (float64, error) { return Entropy([]float64{0, 0, 1, 1}, 10) }, 1},
		{"entropy full float range", func() (float64, error) {
			return Entropy([]float64{-1e308, 1e308, 0}, 10)
		}, math.Log2(3)},
		{"correlation identical", func() (float64, error) {
			return Correlation([]float64{1, 2, 3}, []float64{1, 2, 3})
		}, 1},
		{"correlation reversed", func() (float64, error) {
			return Correlation([]float64{1, 2, 3}, []float64{3, 2, 1})
		}, -1},
		{"sma", func() (float64, error) {
			return SMA(motion.Triple{{1, -1}, {2, -2}, {0, 3}})
		}, 4.5},
		{"mag sma", func() (float64, error) { return MagSMA([]float64{-1, 3}) }, 2},
		{"skewness symmetric", func() (float64, error) { return Skewness([]float64{1, 2, 3}) }, 0},
		{"excess kurtosis", func() (float64, error) { return Kurtosis([]float64{-1, 1, -1, 1}) }, -2},
		{"mean freq", func() (float64, error) { return MeanFreq([]float64{0, 1, 0, 1}) }, 2},
		{"max index", func() (float64, error) { return MaxInd([]float64{1, 5, 2}) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestStatistics_DegenerateRange(t *testing.T) {
	t.Parallel()

	flat := []float64{2, 2, 2, 2}
	checks := map[string]func() (float64, error){
		"entropy":     func() (float64, error) { return Entropy(flat, 10) },
		"entropy nan": func() (float64, error) { return Entropy([]float64{0, math.NaN(), math.NaN(), 1}, 10) },
		"entropy inf": func() (float64, error) { return Entropy([]float64{0, math.Inf(1), 1}, 10) },
		"correlation": func() (float64, error) { return Correlation(flat, []float64{1, 2, 3, 4}) },
		"skewness":    func() (float64, error) { return Skewness(flat) },
		"kurtosis":    func() (float64, error) { return Kurtosis(flat) },
		"mean freq":   func() (float64, error) { return MeanFreq([]float64{0, 0, 0}) },
		"empty band":  func() (float64, error) { return BandEnergy(make([]float64, 10), Band{65, 70}, 1) },
	}
	for name, fn := range checks {
		v, err := fn()
		assert.Zero(t, v, name)
		assert.True(t, errors.Is(err, motion.ErrDegenerateRange), "%s: got %v", name, err)
	}
}

func TestStatistics_Empty(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]func([]float64) (float64, error){
		"mean": Mean, "std": Std, "mad": MAD, "max": Max, "min": Min,
		"energy": Energy, "iqr": IQR, "skewness": Skewness, "kurtosis": Kurtosis,
		"meanFreq": MeanFreq, "maxInd": MaxInd, "magSMA": MagSMA,
	} {
		v, err := fn(nil)
		assert.Zero(t, v, name)
		assert.True(t, errors.Is(err, motion.ErrInsufficientData), name)
	}
}

func TestCorrelation_Bounds(t *testing.T) {
	t.Parallel()

	x := []float64{0.1, 2.5, -1.3, 4.4, 0.0, 3.3}
	y := []float64{1.0, -0.5, 2.2, 0.3, 1.1, -2.0}
	r, err := Correlation(x, y)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r, -1.0)
	assert.LessOrEqual(t, r, 1.0)

	_, err = Correlation(x, y[:3])
	assert.Error(t, err)
}

func TestBandEnergy(t *testing.T) {
	t.Parallel()

	mags := make([]float64, 64)
	for i := range mags {
		mags[i] = 2
	}
	v, err := BandEnergy(mags, Band{1, 8}, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	mags[0] = 4
	v, err = BandEnergy(mags, Band{1, 8}, 1)
	require.NoError(t, err)
	assert.InDelta(t, (16.0+7*4)/8, v, 1e-12)

	// A band running past the spectrum only averages the bins present.
	v, err = BandEnergy(mags[:60], Band{57, 64}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)
}
