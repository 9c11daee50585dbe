package design

import (
	"math"

	"github.com/cwbudde/algo-rtdsp/dsp/filter/biquad"
)

// VicanekPoles returns the denominator (a1, a2) of a digital section whose
// poles are the impulse-invariant images of an analog second-order
// prototype with natural frequency w0 (rad/sample) and damping 1/(2*q*a).
// a is the peaking amplitude 10^(gain/40) and 1 for the other prototypes.
func VicanekPoles(w0, q, a float64) (a1, a2 float64) {
	zeta := 1 / (2 * q * a)
	a2 = math.Exp(-2 * zeta * w0)

	if zeta <= 1 {
		a1 = -2 * math.Exp(-zeta*w0) * math.Cos(math.Sqrt(1-zeta*zeta)*w0)
		return a1, a2
	}

	// Two real poles exp((-zeta±s)·w0), summed directly: for heavy damping
	// exp(-zeta·w0)·cosh(s·w0) is 0·Inf. s-zeta is written as -1/(s+zeta)
	// to avoid cancellation.
	sz := math.Sqrt(zeta*zeta-1) + zeta
	a1 = -(math.Exp(-w0/sz) + math.Exp(-sz*w0))

	return a1, a2
}

// magnitudeTerms expresses |1 + a1 z^-1 + a2 z^-2|^2 at frequency w as
// A0*phi0 + A1*phi1 + A2*phi2. The same basis describes the numerator
// through B0..B2.
type magnitudeTerms struct {
	A0, A1, A2       float64
	phi0, phi1, phi2 float64
}

func vicanekTerms(w0, a1, a2 float64) magnitudeTerms {
	s := math.Sin(w0 / 2)
	phi1 := s * s
	phi0 := 1 - phi1

	return magnitudeTerms{
		A0:   (1 + a1 + a2) * (1 + a1 + a2),
		A1:   (1 - a1 + a2) * (1 - a1 + a2),
		A2:   -4 * a2,
		phi0: phi0,
		phi1: phi1,
		phi2: 4 * phi0 * phi1,
	}
}

// denominator returns the squared denominator magnitude at w0.
func (m magnitudeTerms) denominator() float64 {
	return m.A0*m.phi0 + m.A1*m.phi1 + m.A2*m.phi2
}

// numeratorFromMagnitude solves for b0..b2 given the numerator magnitude
// terms B0 = (b0+b1+b2)^2, B1 = (b0-b1+b2)^2 and B2 = -4*b0*b2.
func numeratorFromMagnitude(bb0, bb1, bb2 float64) (b0, b1, b2 float64) {
	s0 := math.Sqrt(math.Max(bb0, 0))
	s1 := math.Sqrt(math.Max(bb1, 0))
	w := (s0 + s1) / 2

	b0 = (w + math.Sqrt(math.Max(w*w+bb2, 0))) / 2
	b1 = (s0 - s1) / 2

	if b0 != 0 {
		b2 = -bb2 / (4 * b0)
	}

	return b0, b1, b2
}

// MatchedLowpass designs a lowpass that matches the analog prototype at DC
// (0 dB) and at Nyquist.
func MatchedLowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	a1, a2 := VicanekPoles(w0, q, 1)
	f0 := w0 / math.Pi
	f02 := f0 * f0

	r0 := 1 + a1 + a2
	r1 := (1 - a1 + a2) * f02 / math.Sqrt((1-f02)*(1-f02)+f02/(q*q))

	b0 := (r0 + r1) / 2
	b1 := r0 - b0

	return biquad.Coefficients{B0: b0, B1: b1, A1: a1, A2: a2}
}

// MatchedHighpass designs a highpass with a double zero at DC whose gain at
// the corner equals the analog prototype's (q).
func MatchedHighpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	a1, a2 := VicanekPoles(w0, q, 1)
	m := vicanekTerms(w0, a1, a2)

	b0 := q * math.Sqrt(math.Max(m.denominator(), 0)) / (4 * m.phi1)

	return biquad.Coefficients{B0: b0, B1: -2 * b0, B2: b0, A1: a1, A2: a2}
}

// MatchedBandpass designs a bandpass with 0 dB at freq, a zero at DC and
// the analog prototype's magnitude at Nyquist.
func MatchedBandpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	a1, a2 := VicanekPoles(w0, q, 1)
	m := vicanekTerms(w0, a1, a2)
	f0 := w0 / math.Pi
	f02 := f0 * f0

	bb1 := m.A1 * (f02 / (q * q)) / ((1-f02)*(1-f02) + f02/(q*q))
	bb2 := (m.denominator() - bb1*m.phi1) / m.phi2

	b0, b1, b2 := numeratorFromMagnitude(0, bb1, bb2)

	return biquad.Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2}
}

// MatchedPeak designs a peaking EQ with unity gain at DC, gainDB at freq
// and the analog prototype's magnitude at Nyquist.
func MatchedPeak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	a := math.Pow(10, gainDB/40)
	g := a * a
	a1, a2 := VicanekPoles(w0, q, a)
	m := vicanekTerms(w0, a1, a2)
	f0 := w0 / math.Pi
	f02 := f0 * f0
	d := (f02 - 1) * (f02 - 1)

	bb0 := m.A0
	bb1 := m.A1 * (d + f02*a*a/(q*q)) / (d + f02/(a*a*q*q))
	bb2 := (g*g*m.denominator() - bb0*m.phi0 - bb1*m.phi1) / m.phi2

	b0, b1, b2 := numeratorFromMagnitude(bb0, bb1, bb2)

	return biquad.Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2}
}
