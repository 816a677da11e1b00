package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/motion.report/internal/motion/features"
)

func row(seed float64) features.Vector {
	v := features.NewVector()
	for i := range v {
		v[i] = seed - float64(i)/7
	}
	return v
}

func TestWriteFeatureCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFeatureCSV(&buf, nil, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	header := records[0]
	require.Len(t, header, 562)
	assert.Equal(t, "window", header[0])
	assert.Equal(t, "tBodyAcc-mean()-x", header[1])
	assert.Equal(t, features.AngleZGravityMean, header[561])
}

func TestWriteThenReadFeatureCSV(t *testing.T) {
	rows := features.Table{row(1), row(-3.25)}
	windows := []int{0, 5}

	var buf bytes.Buffer
	require.NoError(t, WriteFeatureCSV(&buf, windows, rows))

	gotWindows, gotRows, err := ReadFeatureCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, windows, gotWindows)
	if diff := cmp.Diff(rows, gotRows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFeatureCSV_DefaultWindowNumbers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFeatureCSV(&buf, nil, features.Table{row(0), row(1), row(2)}))

	windows, _, err := ReadFeatureCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, windows)
}

func TestWriteFeatureCSV_Validation(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFeatureCSV(&buf, []int{0}, features.Table{row(0), row(1)})
	assert.ErrorContains(t, err, "1 window indexes for 2 rows")

	err = WriteFeatureCSV(&buf, nil, features.Table{{1, 2}})
	assert.ErrorContains(t, err, "row 0 has 2 values")
}

func TestReadFeatureCSV_RejectsForeignHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFeatureCSV(&buf, nil, features.Table{row(0)}))
	renamed := strings.Replace(buf.String(), "tBodyAcc-mean()-x", "tBodyAcc-mean-X", 1)

	_, _, err := ReadFeatureCSV(strings.NewReader(renamed))
	assert.ErrorContains(t, err, `column 1 is "tBodyAcc-mean-X"`)
}
