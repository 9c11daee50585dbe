package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns H(e^jw) at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zi := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate) // z^-1 on the unit circle

	num := complex(c.B0, 0) + zi*(complex(c.B1, 0)+zi*complex(c.B2, 0))
	den := 1 + zi*(complex(c.A1, 0)+zi*complex(c.A2, 0))

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 in real arithmetic. Each polynomial
// p0 + p1 z^-1 + p2 z^-2 is evaluated on the unit circle as
//
//	re = p0 + p1 cos w + p2 cos 2w,  im = -(p1 sin w + p2 sin 2w)
//
// so coefficients that cancel exactly at w (a highpass at DC) give an exact
// zero instead of rounding residue.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	s1, c1 := math.Sincos(w)
	s2, c2 := math.Sincos(2 * w)

	num := powerOnCircle(c.B0, c.B1, c.B2, s1, c1, s2, c2)
	den := powerOnCircle(1, c.A1, c.A2, s1, c1, s2, c2)

	return num / den
}

func powerOnCircle(p0, p1, p2, sinW, cosW, sin2W, cos2W float64) float64 {
	re := p0 + p1*cosW + p2*cos2W
	im := p1*sinW + p2*sin2W
	return re*re + im*im
}

// MagnitudeDB returns 10*log10(|H(f)|^2). The result is unbounded.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in radians.
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// ImpulseResponse returns the first n output samples for a unit impulse.
// The section's state is left as it was.
func (s *Section) ImpulseResponse(n int) []float32 {
	if n <= 0 {
		return nil
	}

	fresh := Section{Coefficients: s.Coefficients}
	ir := make([]float32, n)
	ir[0] = 1
	fresh.processSamples(ir)

	return ir
}
