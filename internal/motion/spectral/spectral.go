// Package spectral computes zero-padded radix-2 DFTs of conditioned
// signals and the one-sided magnitude spectra the frequency-domain
// features are built from.
package spectral

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is a DFT stored as interleaved real/imaginary pairs:
// [re0, im0, re1, im1, ...]. It has 2*Size entries.
type Spectrum struct {
	// Size is the transform length (a power of two).
	Size int
	// Len is the length of the signal before zero padding.
	Len  int
	Data []float64
}

// NextPow2 returns the smallest power of two >= n (1 for n <= 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Transform zero-pads x to the next power of two and returns its DFT.
func Transform(x []float64) Spectrum {
	size := NextPow2(len(x))
	padded := make([]float64, size)
	copy(padded, x)

	bins := fft.FFTReal(padded)
	data := make([]float64, 2*size)
	for i, c := range bins {
		data[2*i] = real(c)
		data[2*i+1] = imag(c)
	}
	return Spectrum{Size: size, Len: len(x), Data: data}
}

// Bin returns the complex value of bin k.
func (s Spectrum) Bin(k int) complex128 {
	return complex(s.Data[2*k], s.Data[2*k+1])
}

// Magnitudes returns |X_k| for the first Size/2 bins. The upper half of a
// real signal's spectrum mirrors the lower half and carries no extra
// information.
func (s Spectrum) Magnitudes() []float64 {
	half := s.Size / 2
	if half == 0 {
		half = s.Size
	}
	out := make([]float64, half)
	for k := range out {
		re, im := s.Data[2*k], s.Data[2*k+1]
		out[k] = math.Sqrt(re*re + im*im)
	}
	return out
}

// BinWidth returns the frequency spacing between bins in Hz.
func (s Spectrum) BinWidth(sampleRateHz float64) float64 {
	if s.Size == 0 {
		return 0
	}
	return sampleRateHz / float64(s.Size)
}

// MagnitudeSpectrum is shorthand for Transform(x).Magnitudes().
func MagnitudeSpectrum(x []float64) []float64 {
	return Transform(x).Magnitudes()
}
