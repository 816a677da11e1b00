package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/motion.report/internal/testutil"
)

func TestNextPow2(t *testing.T) {
	t.Parallel()

	tests := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 64: 64, 127: 128, 128: 128, 129: 256}
	for in, want := range tests {
		assert.Equal(t, want, NextPow2(in), "NextPow2(%d)", in)
	}
}

func TestTransform_ZeroPadsAndInterleaves(t *testing.T) {
	t.Parallel()

	s := Transform([]float64{1, 1, 1})
	require.Equal(t, 4, s.Size)
	assert.Equal(t, 3, s.Len)
	require.Len(t, s.Data, 8)

	// DFT of [1 1 1 0]: X0 = 3, X1 = -j, X2 = 1, X3 = j.
	assert.InDelta(t, 3, s.Data[0], 1e-12)
	assert.InDelta(t, 0, s.Data[1], 1e-12)
	assert.InDelta(t, 0, real(s.Bin(1)), 1e-12)
	assert.InDelta(t, -1, imag(s.Bin(1)), 1e-12)
	assert.InDelta(t, 1, real(s.Bin(2)), 1e-12)
	assert.InDelta(t, 1, imag(s.Bin(3)), 1e-12)
}

func TestMagnitudes_SinePeak(t *testing.T) {
	t.Parallel()

	// 6.25 Hz at 50 Hz over 128 samples lands exactly on bin 16.
	x := testutil.Sine(128, 2, 6.25, 50)
	mags := MagnitudeSpectrum(x)
	require.Len(t, mags, 64)

	peak := 0
	for k, m := range mags {
		if m > mags[peak] {
			peak = k
		}
	}
	assert.Equal(t, 16, peak)
	assert.InDelta(t, 128.0, mags[16], 1e-9)
	for k, m := range mags {
		assert.False(t, math.IsNaN(m), "bin %d", k)
	}
}

func TestBinWidth(t *testing.T) {
	t.Parallel()

	s := Transform(make([]float64, 127))
	assert.Equal(t, 128, s.Size)
	assert.InDelta(t, 50.0/128, s.BinWidth(50), 1e-15)
	assert.Zero(t, Spectrum{}.BinWidth(50))
}
