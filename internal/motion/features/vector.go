package features

import "fmt"

// Vector holds one value per canonical key, indexed by column. A fresh
// Vector is all zeros, so any key the extractor cannot compute defaults
// to 0.
type Vector []float64

// NewVector returns a zeroed vector of NumFeatures columns.
func NewVector() Vector {
	return make(Vector, NumFeatures)
}

// FromValues wraps a row of values in canonical order.
func FromValues(values []float64) (Vector, error) {
	if len(values) != NumFeatures {
		return nil, fmt.Errorf("feature row has %d values, want %d", len(values), NumFeatures)
	}
	v := NewVector()
	copy(v, values)
	return v, nil
}

// Get returns the value for key.
func (v Vector) Get(key string) (float64, bool) {
	i, ok := keyIndex[key]
	if !ok || i >= len(v) {
		return 0, false
	}
	return v[i], true
}

// MustGet returns the value for key and panics if key is not canonical.
func (v Vector) MustGet(key string) float64 {
	val, ok := v.Get(key)
	if !ok {
		panic(fmt.Sprintf("features: unknown key %q", key))
	}
	return val
}

// Values returns a copy of the values in canonical order.
func (v Vector) Values() []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// Map returns the vector as a key -> value map.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, len(keys))
	for i, k := range keys {
		if i < len(v) {
			m[k] = v[i]
		}
	}
	return m
}

// Table is one Vector per window, in window order.
type Table []Vector
