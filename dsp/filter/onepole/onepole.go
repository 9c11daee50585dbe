package onepole

import (
	"math"

	"github.com/cwbudde/algo-rtdsp/dsp/core"
)

// LowPass is a first-order low-pass filter with float32 state.
type LowPass struct {
	rate   float64
	cutoff float32
	a      float32
	z      float32
}

// New returns a LowPass for the given sample rate and cutoff frequency in Hz.
func New(rate float64, freq float32) *LowPass {
	lp := &LowPass{rate: rate}
	lp.SetCutoff(freq)

	return lp
}

// Coefficient returns the pole coefficient a = 1 - exp(-2*pi*freq/rate).
func (lp *LowPass) Coefficient() float32 {
	return lp.a
}

// Cutoff returns the configured cutoff in Hz.
func (lp *LowPass) Cutoff() float32 {
	return lp.cutoff
}

// SetCutoff recomputes the pole coefficient. The filter state is kept so a
// running smoother does not jump.
func (lp *LowPass) SetCutoff(freq float32) {
	lp.cutoff = freq
	lp.a = coefficient(float64(freq), lp.rate)
}

// SetSampleRate changes the sample rate and recomputes the coefficient for
// the current cutoff.
func (lp *LowPass) SetSampleRate(rate float64) {
	lp.rate = rate
	lp.a = coefficient(float64(lp.cutoff), rate)
}

// Reset zeroes the filter state.
func (lp *LowPass) Reset() {
	lp.z = 0
}

// State returns the current filter output.
func (lp *LowPass) State() float32 {
	return lp.z
}

// Proc filters data in place.
func (lp *LowPass) Proc(data []float32) {
	a, z := lp.a, lp.z
	for i, x := range data {
		z += a * (x - z)
		data[i] = z
	}

	lp.z = core.SanitizeState32(z)
}

// Ctrl fills data with the response of the filter to a constant input val.
// The output moves monotonically from the current state toward val.
func (lp *LowPass) Ctrl(data []float32, val float32) {
	a, z := lp.a, lp.z
	for i := range data {
		z += a * (val - z)
		data[i] = z
	}

	lp.z = core.SanitizeState32(z)
}

func coefficient(freq, rate float64) float32 {
	if !(rate > 0) || !(freq > 0) {
		return 0
	}

	a := 1 - math.Exp(-2*math.Pi*freq/rate)

	return float32(core.Clamp(a, 0, 1))
}
