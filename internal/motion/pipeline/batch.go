package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/motion.report/internal/monitoring"
	"github.com/banshee-data/motion.report/internal/motion"
	"github.com/banshee-data/motion.report/internal/motion/features"
	"github.com/banshee-data/motion.report/internal/motion/normalize"
)

// WindowError records a window dropped from a batch.
type WindowError struct {
	// Index is the window's position in the batch.
	Index int
	// Start is the index of the window's first sample in its stream.
	Start int
	Err   error
}

func (e WindowError) Error() string {
	return fmt.Sprintf("window %d (sample %d): %v", e.Index, e.Start, e.Err)
}

func (e WindowError) Unwrap() error { return e.Err }

// Batch is the output of ExtractBatch.
type Batch struct {
	// Rows holds one feature vector per surviving window, in window order.
	Rows features.Table
	// Windows maps each row back to its window index.
	Windows []int
	// Diagnostics is parallel to Rows.
	Diagnostics []features.Diagnostics
	// Dropped lists windows that could not be extracted.
	Dropped []WindowError
}

// ExtractBatch extracts every window pair concurrently and returns the
// rows in input order. A failing window is dropped and reported; it never
// aborts the others. Cancelling ctx stops new windows from starting but
// lets running ones finish, and ExtractBatch then returns ctx.Err().
func (e *Extractor) ExtractBatch(ctx context.Context, acc, gyro []motion.Window) (Batch, error) {
	if len(acc) != len(gyro) {
		return Batch{}, fmt.Errorf("have %d accelerometer windows and %d gyroscope windows", len(acc), len(gyro))
	}

	n := len(acc)
	rows := make([]features.Vector, n)
	diags := make([]features.Diagnostics, n)
	errs := make([]error, n)

	workers := e.params.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			rows[i], diags[i], errs[i] = e.ExtractWindowFeatures(acc[i], gyro[i])
			return nil
		})
	}
	_ = g.Wait() // workers never return an error; failures land in errs
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}

	var out Batch
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			we := WindowError{Index: i, Start: acc[i].Start, Err: errs[i]}
			monitoring.Logf("dropping %v", we)
			out.Dropped = append(out.Dropped, we)
			continue
		}
		if d := len(diags[i].Defaulted); d > 0 {
			monitoring.Logf("window %d: %d features defaulted to 0", i, d)
		}
		out.Rows = append(out.Rows, rows[i])
		out.Windows = append(out.Windows, i)
		out.Diagnostics = append(out.Diagnostics, diags[i])
	}
	return out, nil
}

// Result is the output of Run.
type Result struct {
	Batch
	// Normalized is Rows rescaled to [-1, 1]; nil when normalisation is
	// skipped.
	Normalized features.Table
	// Ranges are the per-column ranges Normalized was scaled with.
	Ranges []normalize.Range
}

// Run windows both sample streams, extracts every window pair, and
// normalises the batch when normalizeRows is set. The two streams are
// paired window by window; the shorter stream bounds the batch.
func (e *Extractor) Run(ctx context.Context, accSamples, gyroSamples []motion.Sample, normalizeRows bool) (Result, error) {
	accWin, err := e.windower.All(accSamples)
	if err != nil {
		return Result{}, fmt.Errorf("accelerometer: %w", err)
	}
	gyroWin, err := e.windower.All(gyroSamples)
	if err != nil {
		return Result{}, fmt.Errorf("gyroscope: %w", err)
	}
	k := min(len(accWin), len(gyroWin))

	b, err := e.ExtractBatch(ctx, accWin[:k], gyroWin[:k])
	if err != nil {
		return Result{}, err
	}
	res := Result{Batch: b}
	if !normalizeRows {
		return res, nil
	}
	if len(b.Rows) == 0 {
		return res, fmt.Errorf("all %d windows dropped: %w", k, motion.ErrInsufficientData)
	}
	res.Normalized, res.Ranges, err = normalize.Batch(b.Rows)
	if err != nil {
		return res, err
	}
	return res, nil
}
