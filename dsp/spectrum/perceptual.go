package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rtdsp/dsp/transform"
)

const (
	fftLen    = 512
	fftBins   = fftLen/2 + 1
	traceLen  = fftLen + 1
	hopSize   = fftLen / 4
	specPad   = 4
	validHops = fftLen / hopSize

	// powerNorm maps a full-scale sine on a bin to unit power after the
	// frequency-domain Hann window.
	powerNorm    = 16.0 / (fftLen * fftLen)
	antiDenormal = 1e-20
	maxWfact     = 0.99
	minSpeed     = 1e-6
)

// halfBinKernel interpolates the Hann-windowed spectrum half way between two
// bins from the four neighbours on either side.
var halfBinKernel = [4]float64{0.42441318, -0.08488264, -0.01212609, -0.00404203}

// Mode selects how successive frames are integrated into the traces.
type Mode int

const (
	// ModeNone keeps the last frame.
	ModeNone Mode = iota
	// ModePeak averages like ModeAverage and holds decaying frame maxima
	// in the peak trace. The peak trace never falls below the power trace.
	ModePeak
	// ModeAverage applies an exponential moving average with the current
	// speed.
	ModeAverage
)

// Speed names an integration time preset.
type Speed int

const (
	SpeedRapid Speed = iota
	SpeedFast
	SpeedModerate
	SpeedSlow
	SpeedNoise
	numSpeeds
)

// speedSeconds holds the integration time constant of each Speed preset.
var speedSeconds = [numSpeeds]float64{0.04, 0.15, 0.5, 2, 10}

var speedNames = [numSpeeds]string{"rapid", "fast", "moderate", "slow", "noise"}

func (s Speed) String() string {
	if s >= 0 && s < numSpeeds {
		return speedNames[s]
	}

	return fmt.Sprintf("Speed(%d)", int(s))
}

// TimeConstant returns the preset integration time in seconds, or 0 for an
// unknown preset.
func (s Speed) TimeConstant() float64 {
	if s >= 0 && s < numSpeeds {
		return speedSeconds[s]
	}

	return 0
}

// Warp names a frequency warping preset.
type Warp int

const (
	// WarpBark approximates the Bark scale at the analyzer's sample rate.
	WarpBark Warp = iota
	// WarpMedium uses half the Bark coefficient.
	WarpMedium
	// WarpHigh sits half way between Bark and 0.95.
	WarpHigh
	numWarps
)

var warpNames = [numWarps]string{"bark", "medium", "high"}

func (w Warp) String() string {
	if w >= 0 && w < numWarps {
		return warpNames[w]
	}

	return fmt.Sprintf("Warp(%d)", int(w))
}

// ParseSpeed returns the Speed preset with the given name.
func ParseSpeed(name string) (Speed, error) {
	for i, n := range speedNames {
		if n == name {
			return Speed(i), nil
		}
	}

	return 0, fmt.Errorf("spectrum: unknown speed preset %q", name)
}

// ParseWarp returns the Warp preset with the given name.
func ParseWarp(name string) (Warp, error) {
	for i, n := range warpNames {
		if n == name {
			return Warp(i), nil
		}
	}

	return 0, fmt.Errorf("spectrum: unknown warp preset %q", name)
}

// BarkWarp returns the allpass coefficient that best maps a linear frequency
// axis onto the Bark scale at rate (Smith and Abel).
func BarkWarp(rate float64) float64 {
	return 1.0674*math.Sqrt(2/math.Pi*math.Atan(0.06583*rate/1000)) - 0.1916
}

// WarpFreq maps normalized frequency f (cycles per sample) through a first
// order allpass with coefficient w.
func WarpFreq(w, f float64) float64 {
	s, c := math.Sincos(2 * math.Pi * f)

	return math.Atan2((1-w*w)*s, (1+w*w)*c-2*w) / (2 * math.Pi)
}

// Trace is one integrated spectrum on the warped frequency axis.
type Trace struct {
	// Valid is set once a full window of input has been analyzed.
	Valid bool
	// Count is the number of frames integrated since the last reset.
	Count int32
	// Data holds linear power per trace point.
	Data []float32
}

func (t *Trace) reset() {
	t.Valid = false
	t.Count = 0
	clear(t.Data)
}

// Perceptual is a frequency-warped analyzer with a fixed 512-point transform.
//
// Input samples are staged in InputData and consumed by Process. Each sample
// shifts a chain of first order allpass sections; every 128 samples the chain
// is transformed, Hann windowed in the frequency domain and expanded to 513
// points (257 bins plus the half-bin points between them).
type Perceptual struct {
	rate    float64
	ipdata  []float32
	warped  [fftLen]float32
	frame   []float64
	spec    []complex128
	re, im  []float64
	pw      []float64
	raw     [traceLen]float32
	power   Trace
	peak    Trace
	icount  int
	wfact   float32
	speed   float32
	pmax    float32
	fscale  [traceLen]float32
	bwcorr  [traceLen]float32
	warps   [numWarps]float32
	speeds  [numSpeeds]float32
	forward transform.Real
}

var _ Analyzer = (*Perceptual)(nil)

// NewPerceptual returns an analyzer for the given sample rate. The default
// warp is WarpBark and the default speed is SpeedModerate.
func NewPerceptual(rate float64, opts ...Option) (*Perceptual, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("spectrum: invalid sample rate %v", rate)
	}

	cfg := applyOptions(opts)

	forward, err := cfg.factory(fftLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %d: %w", ErrWindowSize, fftLen, err)
	}

	p := &Perceptual{
		rate:    rate,
		ipdata:  make([]float32, cfg.inputSize),
		frame:   make([]float64, fftLen),
		spec:    make([]complex128, fftBins+2*specPad),
		re:      make([]float64, traceLen),
		im:      make([]float64, traceLen),
		pw:      make([]float64, traceLen),
		power:   Trace{Data: make([]float32, traceLen)},
		peak:    Trace{Data: make([]float32, traceLen)},
		forward: forward,
	}

	bark := BarkWarp(rate)
	p.warps = [numWarps]float32{
		WarpBark:   float32(bark),
		WarpMedium: float32(bark / 2),
		WarpHigh:   float32((bark + 0.95) / 2),
	}

	for i, tc := range speedSeconds {
		p.speeds[i] = float32(-math.Expm1(-hopSize / (tc * rate)))
	}

	p.SetWarp(WarpBark)
	p.SetSpeedPreset(SpeedModerate)

	return p, nil
}

// FFTLen returns the internal transform length.
func (p *Perceptual) FFTLen() int { return fftLen }

// Bins returns the number of trace points.
func (p *Perceptual) Bins() int { return traceLen }

// InputData returns the staging buffer consumed by Process.
func (p *Perceptual) InputData() []float32 { return p.ipdata }

// Power returns the averaged power trace.
func (p *Perceptual) Power() *Trace { return &p.power }

// Peak returns the peak-hold trace. It is only updated in ModePeak.
func (p *Perceptual) Peak() *Trace { return &p.peak }

// PMax returns the largest power in the traces after the last frame.
func (p *Perceptual) PMax() float32 { return p.pmax }

// Wfact returns the current warp coefficient.
func (p *Perceptual) Wfact() float32 { return p.wfact }

// Speed returns the current integration coefficient.
func (p *Perceptual) Speed() float32 { return p.speed }

// SetWfact sets the raw allpass coefficient, clamped to ±0.99. NaN selects
// an unwarped axis.
func (p *Perceptual) SetWfact(w float32) {
	if math.IsNaN(float64(w)) {
		w = 0
	}

	p.wfact = min(max(w, -maxWfact), maxWfact)
	p.updateScale()
}

// SetWarp selects a warp preset. Unknown presets are ignored.
func (p *Perceptual) SetWarp(w Warp) {
	if w < 0 || w >= numWarps {
		return
	}

	p.SetWfact(p.warps[w])
}

// SetSpeed sets the raw per-frame integration coefficient, clamped to (0, 1].
func (p *Perceptual) SetSpeed(s float32) {
	if !(s > minSpeed) {
		s = minSpeed
	}

	p.speed = min(s, 1)
}

// SetSpeedPreset selects an integration time preset. Unknown presets are
// ignored.
func (p *Perceptual) SetSpeedPreset(s Speed) {
	if s < 0 || s >= numSpeeds {
		return
	}

	p.SetSpeed(p.speeds[s])
}

// Reset clears the delay line and both traces.
func (p *Perceptual) Reset() {
	clear(p.warped[:])
	p.icount = 0
	p.pmax = 0
	p.power.reset()
	p.peak.reset()
}

// Process consumes the first iplen samples of InputData. iplen is clamped
// to the staging buffer size.
func (p *Perceptual) Process(iplen int, mode Mode) {
	iplen = min(max(iplen, 0), len(p.ipdata))

	for _, x := range p.ipdata[:iplen] {
		p.push(x)

		p.icount++
		if p.icount == hopSize {
			p.icount = 0
			p.analyze(mode)
		}
	}
}

// FreqAtBin returns the frequency of trace point bin in Hz.
func (p *Perceptual) FreqAtBin(bin int) float32 {
	if bin >= 0 && bin < traceLen {
		return p.fscale[bin] * float32(p.rate)
	}

	return float32(WarpFreq(-float64(p.wfact), float64(bin)/(2*fftLen)) * p.rate)
}

// PowerAtBin returns the averaged power at trace point bin in dB. With pink
// set the power is weighted by the ratio of frequency to point bandwidth.
func (p *Perceptual) PowerAtBin(bin int, gain float32, pink bool) float32 {
	if bin < 0 || bin >= traceLen {
		return negInf
	}

	v := float64(p.power.Data[bin]) * float64(gain)
	if pink {
		v *= float64(p.bwcorr[bin])
	}

	return powerToDB(v)
}

// push shifts x into the allpass chain. Tap k holds tap k-1 delayed through
// (z^-1 - w) / (1 - w z^-1).
func (p *Perceptual) push(x float32) {
	w := p.wfact
	a := x + antiDenormal
	prev := p.warped[0]
	p.warped[0] = a

	for k := 1; k < fftLen; k++ {
		old := p.warped[k]
		a = prev + w*(old-a)
		p.warped[k] = a
		prev = old
	}
}

func (p *Perceptual) analyze(mode Mode) {
	for n := range p.frame {
		p.frame[n] = float64(p.warped[fftLen-1-n])
	}

	if err := p.forward.Forward(p.spec[specPad:specPad+fftBins], p.frame); err != nil {
		return
	}

	last := specPad + fftBins - 1
	for i := 1; i <= specPad; i++ {
		p.spec[specPad-i] = cmplx.Conj(p.spec[specPad+i])
		p.spec[last+i] = cmplx.Conj(p.spec[last-i])
	}

	for k := range fftBins {
		y := p.conv0(k)
		p.re[2*k], p.im[2*k] = real(y), imag(y)
		if k < fftBins-1 {
			y = p.conv1(k)
			p.re[2*k+1], p.im[2*k+1] = real(y), imag(y)
		}
	}

	vecmath.Power(p.pw, p.re, p.im)
	vecmath.ScaleBlock(p.pw, p.pw, powerNorm)
	for i, v := range p.pw {
		p.raw[i] = float32(v)
	}

	p.integrate(mode)
}

// conv0 returns bin k after a Hann window.
func (p *Perceptual) conv0(k int) complex128 {
	v := p.spec[specPad+k-1 : specPad+k+2]
	return 0.5*v[1] - 0.25*(v[0]+v[2])
}

// conv1 returns the interpolated value half way between bins k and k+1.
func (p *Perceptual) conv1(k int) complex128 {
	c := specPad + k

	var y complex128
	for i, g := range halfBinKernel {
		y += complex(g, 0) * (p.spec[c-i] - p.spec[c+1+i])
	}

	return y
}

func (p *Perceptual) integrate(mode Mode) {
	pw := p.power.Data

	switch mode {
	case ModeAverage, ModePeak:
		s := p.speed
		if s >= 1 {
			copy(pw, p.raw[:])
			break
		}
		for i, v := range p.raw {
			pw[i] += s * (v - pw[i])
		}
	default:
		copy(pw, p.raw[:])
	}

	p.power.Count = saturatingInc(p.power.Count)
	p.power.Valid = p.power.Count >= validHops

	pmax := float32(0)
	for _, v := range pw {
		pmax = max(pmax, v)
	}

	if mode == ModePeak {
		pk := p.peak.Data
		decay := 1 - p.speed

		for i, v := range p.raw {
			pk[i] = max(pk[i]*decay, v, pw[i])
			pmax = max(pmax, pk[i])
		}

		p.peak.Count = saturatingInc(p.peak.Count)
		p.peak.Valid = p.peak.Count >= validHops
	}

	p.pmax = pmax
}

// updateScale recomputes the frequency of every trace point and its
// bandwidth correction for the current warp.
func (p *Perceptual) updateScale() {
	w := -float64(p.wfact)

	var f [traceLen]float64
	for i := range f {
		f[i] = WarpFreq(w, float64(i)/(2*fftLen))
		p.fscale[i] = float32(f[i])
	}

	for i := range f {
		lo, hi := max(i-1, 0), min(i+1, traceLen-1)

		df := (f[hi] - f[lo]) / float64(hi-lo)
		if df > 0 {
			p.bwcorr[i] = float32(f[i] / df)
		} else {
			p.bwcorr[i] = 0
		}
	}
}

func saturatingInc(n int32) int32 {
	if n < math.MaxInt32 {
		return n + 1
	}

	return n
}
