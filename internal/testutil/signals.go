// Package testutil holds deterministic test signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Float is the sample type constraint for the helpers.
type Float interface {
	~float32 | ~float64
}

// Sine returns length samples of amplitude*sin(2*pi*freqHz*n/sampleRate).
func Sine[F Float](freqHz, sampleRate, amplitude float64, length int) []F {
	out := make([]F, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = F(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// Noise returns uniform white noise in [-amplitude, amplitude) from a fixed seed.
func Noise[F Float](seed int64, amplitude float64, length int) []F {
	out := make([]F, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = F((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Impulse returns a unit impulse at pos.
func Impulse[F Float](length, pos int) []F {
	out := make([]F, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns a constant signal.
func DC[F Float](value float64, length int) []F {
	out := make([]F, length)
	for i := range out {
		out[i] = F(value)
	}
	return out
}
