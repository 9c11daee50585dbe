package spectrum

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-rtdsp/dsp/transform"
)

var (
	// ErrWindowSize reports an analysis window that cannot be transformed.
	ErrWindowSize = errors.New("spectrum: invalid window size")
	// ErrBounds reports a write past the end of the analysis window.
	ErrBounds = errors.New("spectrum: data exceeds window")
)

const minPower = 1e-12

var negInf = float32(math.Inf(-1))

// MaxInputSize is the largest staging buffer a Perceptual analyzer accepts.
const MaxInputSize = 4096

// Analyzer is the query surface shared by all spectrum analyzers.
type Analyzer interface {
	// PowerAtBin returns the power at bin in dB, scaled by gain and
	// optionally corrected for a pink (1/f) reference.
	PowerAtBin(bin int, gain float32, pink bool) float32
	// FreqAtBin returns the centre frequency of bin in Hz.
	FreqAtBin(bin int) float32
}

// Option configures an analyzer.
type Option func(*config)

type config struct {
	factory   transform.Factory
	inputSize int
}

func defaultConfig() config {
	return config{
		factory:   transform.Default,
		inputSize: MaxInputSize,
	}
}

// WithTransform selects the transform backend. A nil factory is ignored.
func WithTransform(f transform.Factory) Option {
	return func(c *config) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithInputSize sets the Perceptual staging buffer length. Values are
// clamped to [1, MaxInputSize].
func WithInputSize(n int) Option {
	return func(c *config) {
		c.inputSize = min(max(n, 1), MaxInputSize)
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func powerToDB(p float64) float32 {
	if !(p >= minPower) {
		return negInf
	}

	return float32(10 * math.Log10(p))
}
