package derive

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/motion.report/internal/motion"
)

func TestJerk(t *testing.T) {
	t.Parallel()

	got, err := Jerk([]float64{0, 1, 3, 3}, []int64{0, 20, 40, 60})
	require.NoError(t, err)

	want := []float64{50, 100, 0}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Jerk() mismatch (-want +got):\n%s", diff)
	}
}

func TestJerk_UnevenSpacing(t *testing.T) {
	t.Parallel()

	got, err := Jerk([]float64{0, 2, 4}, []int64{1000, 1500, 3500})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got[0], 1e-12)
	assert.InDelta(t, 1.0, got[1], 1e-12)
}

func TestJerk_Errors(t *testing.T) {
	t.Parallel()

	_, err := Jerk([]float64{1, 2, 3}, []int64{0, 20, 20})
	assert.True(t, errors.Is(err, motion.ErrDegenerateTimestamp))

	_, err = Jerk([]float64{1}, []int64{0})
	assert.True(t, errors.Is(err, motion.ErrInsufficientData))

	_, err = Jerk([]float64{1, 2}, []int64{0})
	assert.Error(t, err)
}

func TestJerkTriple_LengthAndAxisError(t *testing.T) {
	t.Parallel()

	tr := motion.Triple{{0, 1, 2}, {0, 0, 0}, {1, 1, 1}}
	j, err := JerkTriple(tr, []int64{0, 10, 20})
	require.NoError(t, err)
	for a := range j {
		assert.Len(t, j[a], 2)
	}
	assert.InDelta(t, 100.0, j[0][0], 1e-12)

	_, err = JerkTriple(tr, []int64{0, 0, 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "axis x")
}

func TestMagnitude(t *testing.T) {
	t.Parallel()

	tr := motion.Triple{
		{3, 0, -1, 0},
		{4, 0, -2, 0},
		{0, 9.8, -2, 0},
	}
	got := Magnitude(tr)
	want := []float64{5, 9.8, 3, 0}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Magnitude() mismatch (-want +got):\n%s", diff)
	}
	for i, v := range got {
		assert.GreaterOrEqual(t, v, 0.0, "sample %d", i)
	}
}
