package core

import (
	"github.com/tphakala/simd/f32"
	"github.com/viterin/vek/vek32"
)

// The block helpers operate on host float32 buffers in place and never
// allocate. Mismatched lengths are truncated to the shorter slice.

// Fill sets every sample of data to val.
func Fill(data []float32, val float32) {
	for i := range data {
		data[i] = val
	}
}

// Mul multiplies every sample of data by the sample at the same index in mult.
func Mul(data, mult []float32) {
	n := min(len(data), len(mult))
	if n == 0 {
		return
	}
	vek32.Mul_Inplace(data[:n], mult[:n])
}

// Scale multiplies every sample of data by gain.
func Scale(data []float32, gain float32) {
	if len(data) == 0 {
		return
	}
	f32.Scale(data, data, gain)
}

// Energy returns the sum of squares of data.
func Energy(data []float32) float32 {
	if len(data) == 0 {
		return 0
	}
	return f32.DotProductUnsafe(data, data)
}

// Peaks widens [lo, hi] to include every sample of data and returns the
// updated bounds. Pass the previous result to accumulate across blocks.
func Peaks(data []float32, lo, hi float32) (float32, float32) {
	if len(data) == 0 {
		return lo, hi
	}
	if m := vek32.Min(data); m < lo {
		lo = m
	}
	if m := vek32.Max(data); m > hi {
		hi = m
	}
	return lo, hi
}
