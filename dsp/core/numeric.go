// Package core holds the numeric and block helpers shared by the processors:
// clamping, state sanitizing, dB conversions, meter deflection and
// allocation-free float32 block operations for host buffers.
package core

import "math"

// Float is the sample type constraint of the generic helpers.
type Float interface {
	~float32 | ~float64
}

// denormalFloor is the magnitude below which recursion state is treated as
// silence.
const denormalFloor = 1e-30

// Clamp limits v to [lo, hi]. Swapped bounds are reordered and NaN is
// returned unchanged.
func Clamp[T Float](v, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

// SanitizeState32 returns 0 for non-finite state or state below 1e-30 in
// magnitude and x otherwise. Filters call it once per block on their
// recursion state.
func SanitizeState32(x float32) float32 {
	if a := math.Abs(float64(x)); !(a >= denormalFloor) || math.IsInf(a, 0) {
		return 0
	}
	return x
}

// LinearToDB converts an amplitude ratio to dB (20*log10).
// Zero maps to -Inf and negative input to NaN.
func LinearToDB(linear float64) float64 {
	return logScale(linear, 20)
}

// LinearPowerToDB converts a power ratio to dB (10*log10).
// Zero maps to -Inf and negative input to NaN.
func LinearPowerToDB(power float64) float64 {
	return logScale(power, 10)
}

func logScale(x, k float64) float64 {
	switch {
	case x < 0:
		return math.NaN()
	case x == 0:
		return math.Inf(-1)
	default:
		return k * math.Log10(x)
	}
}
