// Package window generates the analysis windows used by the spectrum
// analyzers. Every window here is a cosine sum
//
//	w(x) = a0 + a1 cos(2πx) + a2 cos(4πx) + ...
//
// evaluated at x = n/(N-1), or x = n/N in periodic form.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeFlatTop
)

var (
	ErrEmpty   = errors.New("window: no coefficients")
	ErrZeroSum = errors.New("window: coefficients sum to zero")
)

// Metadata holds spectral properties of a window type. The zero value
// describes an unknown type.
type Metadata struct {
	Name string
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// CoherentGain is the mean of the coefficients, equal to a0.
	CoherentGain float64
}

type shape struct {
	name string
	enbw float64
	a    []float64
}

var shapes = map[Type]shape{
	TypeRectangular: {"Rectangular", 1, []float64{1}},
	TypeHann:        {"Hann", 1.5, []float64{0.5, -0.5}},
	TypeHamming:     {"Hamming", 1.3628, []float64{0.54, -0.46}},
	TypeBlackman:    {"Blackman", 1.7268, []float64{0.42, -0.5, 0.08}},
	TypeFlatTop:     {"FlatTop", 3.7702, []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}},
}

func (t Type) String() string {
	if s, ok := shapes[t]; ok {
		return s.name
	}
	return "Unknown"
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	s, ok := shapes[t]
	if !ok {
		return Metadata{}
	}
	return Metadata{Name: s.name, ENBW: s.enbw, CoherentGain: s.a[0]}
}

// Option configures window generation.
type Option func(*bool)

// WithPeriodic selects the periodic form used for FFT framing. The default
// is the symmetric form.
func WithPeriodic() Option {
	return func(periodic *bool) { *periodic = true }
}

// Generate returns length coefficients of window t. Unknown types produce a
// rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	periodic := false
	for _, opt := range opts {
		if opt != nil {
			opt(&periodic)
		}
	}

	a := []float64{1}
	if s, ok := shapes[t]; ok {
		a = s.a
	}

	span := float64(length - 1)
	if periodic {
		span = float64(length)
	}

	out := make([]float64, length)
	for n := range out {
		var x float64
		if length > 1 {
			x = float64(n) / span
		}
		out[n] = cosineSum(a, 2*math.Pi*x)
	}
	return out
}

func cosineSum(a []float64, phase float64) float64 {
	v := 0.0
	for k, ak := range a {
		v += ak * math.Cos(float64(k)*phase)
	}
	return v
}

// Apply multiplies buf in place by window t.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) > 0 {
		vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
	}
}

func sums(coeffs []float64) (sum, sumSq float64, err error) {
	if len(coeffs) == 0 {
		return 0, 0, ErrEmpty
	}
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}
	if sum == 0 {
		return 0, 0, ErrZeroSum
	}
	return sum, sumSq, nil
}

// Normalize scales coeffs in place so that they sum to total. On error the
// slice is left unchanged.
//
// Spectrum analyzers normalize to 2 so that a full-scale sine centred on a
// bin reads as unit amplitude.
func Normalize(coeffs []float64, total float64) error {
	sum, _, err := sums(coeffs)
	if err != nil {
		return err
	}
	vecmath.ScaleBlock(coeffs, coeffs, total/sum)
	return nil
}

// EquivalentNoiseBandwidth returns N·Σw²/(Σw)², the ENBW of coeffs in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	sum, sumSq, err := sums(coeffs)
	if err != nil {
		return 0, err
	}
	return float64(len(coeffs)) * sumSq / (sum * sum), nil
}
