package transform

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrSize reports an unsupported transform length or mismatched buffers.
var ErrSize = errors.New("transform: invalid size")

// Real is a forward real-to-complex transform of fixed length.
type Real interface {
	// Len returns the number of real input samples.
	Len() int
	// Forward writes the Len()/2+1 non-negative frequency bins of src to
	// dst. len(src) must equal Len() and len(dst) must be at least
	// Len()/2+1.
	Forward(dst []complex128, src []float64) error
}

// Factory builds a Real transform of length n.
type Factory func(n int) (Real, error)

// Default is the factory used when an analyzer is not given one.
var Default Factory = NewPlan

// Bins returns the number of output bins for a transform of length n.
func Bins(n int) int {
	return n/2 + 1
}

// Plan runs a complex algo-fft plan on real input.
type Plan struct {
	n    int
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

// NewPlan returns an algo-fft backed transform of length n.
func NewPlan(n int) (Real, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("transform: failed to create FFT plan of size %d: %w", n, err)
	}

	return &Plan{
		n:    n,
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

// Len implements Real.
func (p *Plan) Len() int {
	return p.n
}

// Forward implements Real.
func (p *Plan) Forward(dst []complex128, src []float64) error {
	if err := checkLen(p.n, dst, src); err != nil {
		return err
	}

	for i, x := range src {
		p.in[i] = complex(x, 0)
	}

	if err := p.plan.Forward(p.out, p.in); err != nil {
		return fmt.Errorf("transform: forward FFT failed: %w", err)
	}

	copy(dst, p.out[:Bins(p.n)])

	return nil
}

// Gonum runs gonum's real FFT.
type Gonum struct {
	n   int
	fft *fourier.FFT
}

// NewGonum returns a gonum backed transform of length n.
func NewGonum(n int) (Real, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrSize, n)
	}

	return &Gonum{n: n, fft: fourier.NewFFT(n)}, nil
}

// Len implements Real.
func (g *Gonum) Len() int {
	return g.n
}

// Forward implements Real.
func (g *Gonum) Forward(dst []complex128, src []float64) error {
	if err := checkLen(g.n, dst, src); err != nil {
		return err
	}

	g.fft.Coefficients(dst[:Bins(g.n)], src)

	return nil
}

func checkLen(n int, dst []complex128, src []float64) error {
	if len(src) != n || len(dst) < Bins(n) {
		return ErrSize
	}

	return nil
}
