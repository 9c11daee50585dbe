package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rtdsp/dsp/transform"
	"github.com/cwbudde/algo-rtdsp/dsp/window"
)

// FFT is a transform-based analyzer over a fixed window of W samples.
//
// Samples are staged with SetDataHann, which applies a periodic Hann window
// scaled so that a full-scale sine centred on a bin reads 0 dB. Execute then
// computes the power of bins 0..W/2.
type FFT struct {
	size    int
	rate    float64
	perBin  float64
	hann    []float64
	in      []float64
	bins    []complex128
	re      []float64
	im      []float64
	power   []float64
	forward transform.Real
}

var _ Analyzer = (*FFT)(nil)

// NewFFT returns an analyzer with the given window size and sample rate.
func NewFFT(windowSize int, rate float64, opts ...Option) (*FFT, error) {
	if windowSize < 2 {
		return nil, fmt.Errorf("%w: %d", ErrWindowSize, windowSize)
	}

	cfg := applyOptions(opts)

	forward, err := cfg.factory(windowSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %d: %w", ErrWindowSize, windowSize, err)
	}

	hann := window.Generate(window.TypeHann, windowSize, window.WithPeriodic())
	if err := window.Normalize(hann, 2); err != nil {
		return nil, fmt.Errorf("%w: %d: %w", ErrWindowSize, windowSize, err)
	}

	nb := transform.Bins(windowSize)

	return &FFT{
		size:    windowSize,
		rate:    rate,
		perBin:  rate / float64(windowSize),
		hann:    hann,
		in:      make([]float64, windowSize),
		bins:    make([]complex128, nb),
		re:      make([]float64, nb),
		im:      make([]float64, nb),
		power:   make([]float64, nb),
		forward: forward,
	}, nil
}

// WindowSize returns W.
func (f *FFT) WindowSize() int { return f.size }

// Bins returns the number of power bins, W/2+1.
func (f *FFT) Bins() int { return len(f.power) }

// SetDataHann writes data into the window at offset, multiplied by the
// window table. Nothing is written and ErrBounds is returned when the data
// does not fit.
func (f *FFT) SetDataHann(data []float32, offset int) error {
	if offset < 0 || offset+len(data) > f.size {
		return ErrBounds
	}

	dst := f.in[offset : offset+len(data)]
	for i, x := range data {
		dst[i] = float64(x)
	}

	vecmath.MulBlockInPlace(dst, f.hann[offset:offset+len(data)])

	return nil
}

// Execute transforms the current window and updates the bin powers.
func (f *FFT) Execute() {
	if err := f.forward.Forward(f.bins, f.in); err != nil {
		return
	}

	for i, c := range f.bins {
		f.re[i] = real(c)
		f.im[i] = imag(c)
	}

	vecmath.Power(f.power, f.re, f.im)
}

// FreqAtBin returns bin·rate/W.
func (f *FFT) FreqAtBin(bin int) float32 {
	return float32(float64(bin) * f.perBin)
}

// PowerAtBin returns the power of bin in dB. With pink set the power is
// additionally multiplied by the bin index. Bins outside 0..W/2 and powers
// below -120 dB read as -Inf.
func (f *FFT) PowerAtBin(bin int, gain float32, pink bool) float32 {
	if bin < 0 || bin >= len(f.power) {
		return negInf
	}

	p := f.power[bin] * float64(gain)
	if pink {
		p *= float64(bin)
	}

	return powerToDB(p)
}

// Power returns the bin powers of the last Execute. The slice is owned by
// the analyzer.
func (f *FFT) Power() []float64 { return f.power }

// Reset clears the staged window and the bin powers.
func (f *FFT) Reset() {
	clear(f.in)
	clear(f.power)
}
