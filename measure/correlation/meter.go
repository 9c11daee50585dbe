package correlation

import (
	"math"

	"github.com/cwbudde/algo-rtdsp/dsp/core"
)

const (
	// keeps the pre-filter out of the denormal range on silent input
	antiDenormal = 1e-20

	minPower = 1e-30
)

// Meter measures the correlation between two channels. Process and Read
// must be called from the same goroutine or be externally serialized.
type Meter struct {
	zl, zr        float32
	zlr, zll, zrr float32

	w1 float32 // pre-filter coefficient
	w2 float32 // correlation averaging coefficient
}

// New returns a Meter for the given sample rate.
func New(rate float32, opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)

	m := &Meter{}
	if rate > 0 {
		m.w1 = float32(core.Clamp(2*math.Pi*float64(cfg.LowpassHz)/float64(rate), 0, 1))
		m.w2 = float32(core.Clamp(1/(float64(cfg.TimeConstant)*float64(rate)), 0, 1))
	}

	return m
}

// Process consumes min(len(left), len(right)) samples.
func (m *Meter) Process(left, right []float32) {
	n := min(len(left), len(right))
	if n == 0 {
		return
	}

	left, right = left[:n], right[:n]
	w1, w2 := m.w1, m.w2
	zl, zr := m.zl, m.zr
	zlr, zll, zrr := m.zlr, m.zll, m.zrr

	for i := range left {
		zl += w1*(left[i]-zl) + antiDenormal
		zr += w1*(right[i]-zr) + antiDenormal
		zlr += w2 * (zl*zr - zlr)
		zll += w2 * (zl*zl - zll)
		zrr += w2 * (zr*zr - zrr)
	}

	m.zl = core.SanitizeState32(zl)
	m.zr = core.SanitizeState32(zr)
	m.zlr = core.SanitizeState32(zlr)
	m.zll = core.SanitizeState32(zll)
	m.zrr = core.SanitizeState32(zrr)
}

// Read returns the current correlation in [-1, 1], or 0 when either
// channel is silent.
func (m *Meter) Read() float32 {
	p := float64(m.zll) * float64(m.zrr)
	if !(p > minPower) || math.IsInf(p, 0) {
		return 0
	}

	r := float64(m.zlr) / math.Sqrt(p)

	return float32(core.Clamp(r, -1, 1))
}

// Reset clears all accumulators.
func (m *Meter) Reset() {
	m.zl, m.zr = 0, 0
	m.zlr, m.zll, m.zrr = 0, 0, 0
}
