package filter

import "sort"

// Median applies a sliding median of odd length size. Near the ends the
// window shrinks symmetrically, so out[0] and out[n-1] equal the input.
func Median(in []float64, size int) []float64 {
	out := make([]float64, len(in))
	if size < 1 {
		size = 1
	}
	half := size / 2
	buf := make([]float64, 0, 2*half+1)
	n := len(in)
	for i := range in {
		r := min(half, i, n-1-i)
		buf = append(buf[:0], in[i-r:i+r+1]...)
		sort.Float64s(buf)
		out[i] = buf[r]
	}
	return out
}
