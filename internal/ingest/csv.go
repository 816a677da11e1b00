// Package ingest turns external sensor recordings into motion samples:
// CSV files with one sensor per file, and live six-axis lines from a
// serial IMU.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/motion.report/internal/motion"
)

// SampleHeader is the header written by WriteSamplesCSV and accepted, but
// not required, by ReadSamplesCSV.
var SampleHeader = []string{"timestamp_ms", "x", "y", "z"}

// ReadSamplesCSV reads timestamp_ms,x,y,z records. A first record whose
// timestamp field is not an integer is treated as a header.
func ReadSamplesCSV(r io.Reader) ([]motion.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(SampleHeader)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []motion.Sample
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		s, err := parseSample(rec)
		if err != nil {
			if line == 1 && isHeader(rec) {
				continue
			}
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadSamplesFile opens path and reads it with ReadSamplesCSV.
func ReadSamplesFile(path string) ([]motion.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	samples, err := ReadSamplesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// WriteSamplesCSV writes samples with a header in the format
// ReadSamplesCSV reads.
func WriteSamplesCSV(w io.Writer, samples []motion.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		err := cw.Write([]string{
			strconv.FormatInt(s.Timestamp, 10),
			formatFloat(s.X),
			formatFloat(s.Y),
			formatFloat(s.Z),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseSample(rec []string) (motion.Sample, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return motion.Sample{}, fmt.Errorf("timestamp %q: %w", rec[0], err)
	}
	var v motion.Vec3
	for a := range v {
		v[a], err = strconv.ParseFloat(strings.TrimSpace(rec[a+1]), 64)
		if err != nil {
			return motion.Sample{}, fmt.Errorf("%s %q: %w", motion.Axes[a], rec[a+1], err)
		}
		if math.IsNaN(v[a]) || math.IsInf(v[a], 0) {
			return motion.Sample{}, fmt.Errorf("%s %q: value is not finite", motion.Axes[a], rec[a+1])
		}
	}
	return motion.Sample{X: v[0], Y: v[1], Z: v[2], Timestamp: ts}, nil
}

func isHeader(rec []string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	return err != nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
