package design

import (
	"math"

	"github.com/cwbudde/algo-rtdsp/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// cookbook holds the intermediate terms of the RBJ Audio EQ Cookbook for one
// frequency, Q and gain.
type cookbook struct {
	cw, sw float64
	alpha  float64
	// a is the peak/shelf amplitude 10^(gain/40).
	a float64
}

// unnormalized is b0, b1, b2, a0, a1, a2 before division by a0.
type unnormalized [6]float64

func (c cookbook) resonator(b0, b1, b2 float64) unnormalized {
	return unnormalized{b0, b1, b2, 1 + c.alpha, -2 * c.cw, 1 - c.alpha}
}

// cook evaluates f for a valid frequency and returns the normalized section.
// Frequencies outside (0, Nyquist) yield zero coefficients.
func cook(freq, q, gainDB, sampleRate float64, f func(cookbook) unnormalized) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	sw, cw := math.Sincos(w0)
	c := cookbook{
		cw:    cw,
		sw:    sw,
		alpha: sw / (2 * normalizedQ(q)),
		a:     math.Pow(10, gainDB/40),
	}

	return f(c).normalize()
}

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, 0, sampleRate, func(c cookbook) unnormalized {
		b := (1 - c.cw) / 2
		return c.resonator(b, 2*b, b)
	})
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, 0, sampleRate, func(c cookbook) unnormalized {
		b := (1 + c.cw) / 2
		return c.resonator(b, -2*b, b)
	})
}

// Bandpass designs a constant-skirt-gain bandpass biquad. The peak gain
// equals q.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, 0, sampleRate, func(c cookbook) unnormalized {
		return c.resonator(c.sw/2, 0, -c.sw/2)
	})
}

// Bandpass0dB designs a bandpass biquad with 0 dB gain at freq.
func Bandpass0dB(freq, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, 0, sampleRate, func(c cookbook) unnormalized {
		return c.resonator(c.alpha, 0, -c.alpha)
	})
}

// Notch designs a notch biquad centered at freq (Hz).
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, 0, sampleRate, func(c cookbook) unnormalized {
		return c.resonator(1, -2*c.cw, 1)
	})
}

// Allpass designs an allpass biquad centered at freq (Hz).
func Allpass(freq, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, 0, sampleRate, func(c cookbook) unnormalized {
		return c.resonator(1-c.alpha, -2*c.cw, 1+c.alpha)
	})
}

// Peak designs a peaking-EQ biquad with gain in dB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, gainDB, sampleRate, func(c cookbook) unnormalized {
		return unnormalized{
			1 + c.alpha*c.a, -2 * c.cw, 1 - c.alpha*c.a,
			1 + c.alpha/c.a, -2 * c.cw, 1 - c.alpha/c.a,
		}
	})
}

// LowShelf designs a low-shelf biquad with gain in dB.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, gainDB, sampleRate, func(c cookbook) unnormalized {
		a := c.a
		beta := 2 * math.Sqrt(a) * c.alpha
		sum, diff := a+1, a-1

		return unnormalized{
			a * (sum - diff*c.cw + beta), 2 * a * (diff - sum*c.cw), a * (sum - diff*c.cw - beta),
			sum + diff*c.cw + beta, -2 * (diff + sum*c.cw), sum + diff*c.cw - beta,
		}
	})
}

// HighShelf designs a high-shelf biquad with gain in dB.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return cook(freq, q, gainDB, sampleRate, func(c cookbook) unnormalized {
		a := c.a
		beta := 2 * math.Sqrt(a) * c.alpha
		sum, diff := a+1, a-1

		return unnormalized{
			a * (sum + diff*c.cw + beta), -2 * a * (diff + sum*c.cw), a * (sum + diff*c.cw - beta),
			sum - diff*c.cw + beta, 2 * (diff - sum*c.cw), sum - diff*c.cw - beta,
		}
	})
}

// normalizedW0 converts freq to radians per sample. It fails for
// non-finite input and for frequencies outside (0, Nyquist).
func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if !finite(freq) || !finite(sampleRate) || sampleRate <= 0 {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

// normalizedQ replaces unusable Q values with a Butterworth Q.
func normalizedQ(q float64) float64 {
	if !finite(q) || q <= 0 {
		return defaultQ
	}

	return q
}

func (u unnormalized) normalize() biquad.Coefficients {
	a0 := u[3]
	if a0 == 0 || !finite(a0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: u[0] / a0,
		B1: u[1] / a0,
		B2: u[2] / a0,
		A1: u[4] / a0,
		A2: u[5] / a0,
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
