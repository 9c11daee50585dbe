package iir

import (
	"math"

	"github.com/cwbudde/algo-rtdsp/dsp/core"
	"github.com/cwbudde/algo-rtdsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-rtdsp/dsp/filter/design"
)

const (
	minFreq    = 1.0
	maxFreqRel = 0.4998
	minQ       = 0.001
	maxDB      = 120
)

// Biquad is a retunable second-order filter. The zero value is not usable;
// construct it with NewBiquad.
type Biquad struct {
	rate    float64
	section *biquad.Section
}

// NewBiquad returns a pass-through filter for the given sample rate.
func NewBiquad(rate float64) *Biquad {
	return &Biquad{
		rate:    rate,
		section: biquad.NewSection(biquad.Coefficients{B0: 1}),
	}
}

// SampleRate returns the rate the filter was constructed with.
func (b *Biquad) SampleRate() float64 {
	return b.rate
}

// Compute designs coefficients for t at freq Hz. gainDB is used by the
// peaking and shelving types. freq is clamped to [1, 0.4998*rate], q to
// at least 0.001 and gainDB to ±240. A design that is not finite leaves the
// coefficients unchanged. The filter state is kept.
func (b *Biquad) Compute(t Type, freq, q, gainDB float64) {
	freq = core.Clamp(freq, minFreq, maxFreqRel*b.rate)
	if !(q >= minQ) {
		q = minQ
	}
	if math.IsNaN(gainDB) {
		gainDB = 0
	}
	gainDB = core.Clamp(gainDB, -maxDB*2, maxDB*2)

	var c biquad.Coefficients

	switch t {
	case TypeLowPass:
		c = design.Lowpass(freq, q, b.rate)
	case TypeHighPass:
		c = design.Highpass(freq, q, b.rate)
	case TypeBandPassSkirt:
		c = design.Bandpass(freq, q, b.rate)
	case TypeBandPass0dB:
		c = design.Bandpass0dB(freq, q, b.rate)
	case TypeNotch:
		c = design.Notch(freq, q, b.rate)
	case TypeAllPass:
		c = design.Allpass(freq, q, b.rate)
	case TypePeaking:
		c = design.Peak(freq, gainDB, q, b.rate)
	case TypeLowShelf:
		c = design.LowShelf(freq, gainDB, q, b.rate)
	case TypeHighShelf:
		c = design.HighShelf(freq, gainDB, q, b.rate)
	case TypeMatchedLowPass:
		c = design.MatchedLowpass(freq, q, b.rate)
	case TypeMatchedHighPass:
		c = design.MatchedHighpass(freq, q, b.rate)
	case TypeMatchedBandPass0dB:
		c = design.MatchedBandpass(freq, q, b.rate)
	case TypeMatchedPeaking:
		c = design.MatchedPeak(freq, gainDB, q, b.rate)
	default:
		return
	}

	if !finiteCoefficients(c) {
		return
	}
	b.section.Coefficients = c
}

func finiteCoefficients(c biquad.Coefficients) bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Configure sets the coefficients directly (a0 normalized to 1).
func (b *Biquad) Configure(a1, a2, b0, b1, b2 float64) {
	b.section.Coefficients = biquad.Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2}
}

// ConfigureFrom copies the coefficients of other. The state of b is kept.
// A nil other leaves b unchanged.
func (b *Biquad) ConfigureFrom(other *Biquad) {
	if other == nil {
		return
	}
	b.section.Coefficients = other.section.Coefficients
}

// Coefficients returns the current coefficients in Configure order.
func (b *Biquad) Coefficients() (a1, a2, b0, b1, b2 float64) {
	c := b.section.Coefficients
	return c.A1, c.A2, c.B0, c.B1, c.B2
}

// Section exposes the underlying runtime section.
func (b *Biquad) Section() *biquad.Section {
	return b.section
}

// Run filters data in place.
func (b *Biquad) Run(data []float32) {
	b.section.ProcessBlock(data)
}

// Reset zeroes the filter state. Coefficients are kept.
func (b *Biquad) Reset() {
	b.section.Reset()
}

// Clone returns an independent copy with the same coefficients and state.
func (b *Biquad) Clone() *Biquad {
	s := biquad.NewSection(b.section.Coefficients)
	s.SetState(b.section.State())

	return &Biquad{rate: b.rate, section: s}
}

// DBAtFreq evaluates the magnitude response at freq Hz in dB. The result is
// clamped to [-120, 120]; a NaN evaluation reads as 0 dB.
func (b *Biquad) DBAtFreq(freq float64) float32 {
	db := b.section.MagnitudeDB(freq, b.rate)
	if math.IsNaN(db) {
		return 0
	}

	return float32(core.Clamp(db, -maxDB, maxDB))
}
