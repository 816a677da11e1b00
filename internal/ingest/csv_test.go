package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/motion.report/internal/motion"
)

func TestReadSamplesCSV(t *testing.T) {
	want := []motion.Sample{
		{Timestamp: 0, X: 0.1, Y: -0.2, Z: 9.81},
		{Timestamp: 20, X: 0.15, Y: -0.1, Z: 9.79},
	}
	tests := []struct {
		name  string
		input string
	}{
		{"with header", "timestamp_ms,x,y,z\n0,0.1,-0.2,9.81\n20,0.15,-0.1,9.79\n"},
		{"without header", "0,0.1,-0.2,9.81\n20,0.15,-0.1,9.79\n"},
		{"spaces and comments", "# phone in pocket\n0, 0.1, -0.2, 9.81\n20, 0.15, -0.1, 9.79\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSamplesCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ReadSamplesCSV mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadSamplesCSV_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"bad value", "0,0.1,abc,9.8\n", "record 1: y"},
		{"bad later timestamp", "0,0,0,9.8\n1.5,0,0,9.8\n", "record 2: timestamp"},
		{"wrong field count", "0,0,0\n", "wrong number of fields"},
		{"header not first", "0,0,0,9.8\ntimestamp_ms,x,y,z\n", "record 2"},
		{"nan value", "0,0,0,9.8\n20,NaN,0,9.8\n", "record 2: x \"NaN\": value is not finite"},
		{"inf value", "0,0,-Inf,9.8\n", "record 1: y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSamplesCSV(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestReadSamplesCSV_Empty(t *testing.T) {
	got, err := ReadSamplesCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteThenReadSamplesFile(t *testing.T) {
	samples := []motion.Sample{
		{Timestamp: 1000, X: 1.0 / 3, Y: -2.5e-7, Z: 9.80665},
		{Timestamp: 1020, X: 0, Y: 0, Z: -9.80665},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSamplesCSV(&buf, samples))
	assert.True(t, strings.HasPrefix(buf.String(), "timestamp_ms,x,y,z\n"))

	path := filepath.Join(t.TempDir(), "acc.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := ReadSamplesFile(path)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestReadSamplesFile_Missing(t *testing.T) {
	_, err := ReadSamplesFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
