package normalize

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/motion.report/internal/motion"
	"github.com/banshee-data/motion.report/internal/motion/features"
)

func TestBatch_Bounds(t *testing.T) {
	t.Parallel()

	rows := features.Table{
		{1, 5, -3},
		{3, 5, 0},
		{2, 5, 3},
	}
	out, ranges, err := Batch(rows)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, features.Vector{-1, 0, -1}, out[0])
	assert.Equal(t, features.Vector{1, 0, 0}, out[1])
	assert.Equal(t, features.Vector{0, 0, 1}, out[2])

	assert.Equal(t, Range{Min: 1, Max: 3}, ranges[0])
	assert.True(t, ranges[1].Constant())

	// Input is untouched.
	assert.Equal(t, 1.0, rows[0][0])
}

func TestBatch_RandomColumnsHitBothEnds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	rows := make(features.Table, 20)
	for i := range rows {
		rows[i] = features.NewVector()
		for c := range rows[i] {
			rows[i][c] = rng.NormFloat64() * float64(c+1)
		}
	}
	out, _, err := Batch(rows)
	require.NoError(t, err)

	for c := 0; c < features.NumFeatures; c++ {
		lo, hi := 2.0, -2.0
		for _, r := range out {
			v := r[c]
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
			lo, hi = min(lo, v), max(hi, v)
		}
		assert.Equal(t, -1.0, lo, "column %d min", c)
		assert.Equal(t, 1.0, hi, "column %d max", c)
	}
}

func TestBatch_SingleRowIsAllZero(t *testing.T) {
	t.Parallel()

	out, _, err := Batch(features.Table{{4, -2, 7}})
	require.NoError(t, err)
	assert.Equal(t, features.Vector{0, 0, 0}, out[0])
}

func TestBatch_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := Batch(nil)
	assert.True(t, errors.Is(err, motion.ErrInsufficientData))

	_, _, err = Batch(features.Table{{1, 2}, {1}})
	assert.Error(t, err)
}

func TestApply_ClampsToStoredRange(t *testing.T) {
	t.Parallel()

	ranges := []Range{{Min: 0, Max: 10}, {Min: 2, Max: 2}}
	out, err := Apply(features.Table{{15, 9}, {-5, 2}, {5, 1}}, ranges)
	require.NoError(t, err)
	assert.Equal(t, features.Vector{1, 0}, out[0])
	assert.Equal(t, features.Vector{-1, 0}, out[1])
	assert.Equal(t, features.Vector{0, 0}, out[2])

	_, err = Apply(features.Table{{1}}, ranges)
	assert.Error(t, err)
}
