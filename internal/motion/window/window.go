// Package window slices a sample stream into fixed-size, overlapping
// windows.
package window

import (
	"fmt"

	"github.com/banshee-data/motion.report/internal/motion"
)

// Windower cuts windows of Size samples every Slide samples.
type Windower struct {
	Size  int
	Slide int
}

// New returns a Windower, rejecting non-positive sizes.
func New(size, slide int) (Windower, error) {
	if size <= 0 {
		return Windower{}, fmt.Errorf("window size must be positive, got %d", size)
	}
	if slide <= 0 || slide > size {
		return Windower{}, fmt.Errorf("slide size must be in [1, %d], got %d", size, slide)
	}
	return Windower{Size: size, Slide: slide}, nil
}

// Required returns the number of samples needed to cut k windows.
func (w Windower) Required(k int) int {
	if k <= 0 {
		return 0
	}
	return w.Size + w.Slide*(k-1)
}

// Count returns how many complete windows fit in n samples.
func (w Windower) Count(n int) int {
	if n < w.Size {
		return 0
	}
	return (n-w.Size)/w.Slide + 1
}

// Slice cuts exactly k windows from samples, window i starting at i*Slide.
// It returns motion.ErrInsufficientData when samples is too short.
func (w Windower) Slice(samples []motion.Sample, k int) ([]motion.Window, error) {
	if k <= 0 {
		return nil, nil
	}
	need := w.Required(k)
	if len(samples) < need {
		return nil, fmt.Errorf("%d windows need %d samples, have %d: %w",
			k, need, len(samples), motion.ErrInsufficientData)
	}
	out := make([]motion.Window, k)
	for i := range out {
		start := i * w.Slide
		out[i] = motion.Window{
			Start:   start,
			Samples: samples[start : start+w.Size : start+w.Size],
		}
	}
	return out, nil
}

// All cuts every complete window from samples. A stream shorter than one
// window yields motion.ErrInsufficientData.
func (w Windower) All(samples []motion.Sample) ([]motion.Window, error) {
	k := w.Count(len(samples))
	if k == 0 {
		return nil, fmt.Errorf("one window needs %d samples, have %d: %w",
			w.Size, len(samples), motion.ErrInsufficientData)
	}
	return w.Slice(samples, k)
}
