package signal

import (
	"fmt"
	"math"
)

// Type selects the noise colour produced by Generator.Run.
type Type int

const (
	// TypeUniformWhiteNoise is uniformly distributed in [-1, 1).
	TypeUniformWhiteNoise Type = iota
	// TypeGaussianWhiteNoise is normally distributed with an RMS of about
	// 0.708 (-3 dBFS).
	TypeGaussianWhiteNoise
	// TypePinkNoise falls by 3 dB per octave.
	TypePinkNoise
)

// String returns a short name for t.
func (t Type) String() string {
	switch t {
	case TypeUniformWhiteNoise:
		return "white"
	case TypeGaussianWhiteNoise:
		return "gaussian"
	case TypePinkNoise:
		return "pink"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

const gaussianGain = 0.7079

// Generator fills blocks with noise. It is not safe for concurrent use.
type Generator struct {
	typ  Type
	seed uint32

	// pink filter bank
	b [7]float32

	// second deviate of the last Gaussian pair
	pass bool
	rn   float32
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the initial PRNG state. The seed is reduced to 31 bits;
// 0 and 2^31-1 are fixed points of the generator and are replaced by 1.
func WithSeed(seed uint32) Option {
	return func(g *Generator) {
		g.seed = validSeed(seed)
	}
}

// WithType sets the initial noise type.
func WithType(t Type) Option {
	return func(g *Generator) {
		g.typ = t
	}
}

// NewGenerator returns a uniform white noise generator seeded with 1 unless
// options say otherwise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Type returns the active noise type.
func (g *Generator) Type() Type {
	return g.typ
}

// Seed returns the current PRNG state.
func (g *Generator) Seed() uint32 {
	return g.seed
}

// SetType switches the noise type. The pink filter and the Gaussian pair
// cache are cleared; the PRNG state is kept so the sequence stays
// reproducible across type changes.
func (g *Generator) SetType(t Type) {
	g.typ = t
	g.b = [7]float32{}
	g.pass = false
	g.rn = 0
}

// Run fills data with noise of the active type.
func (g *Generator) Run(data []float32) {
	switch g.typ {
	case TypeGaussianWhiteNoise:
		for i := range data {
			data[i] = gaussianGain * g.grandf()
		}
	case TypePinkNoise:
		b := &g.b
		for i := range data {
			// Paul Kellet's refined pink filter
			white := 0.39572 * g.randf()
			b[0] = 0.99886*b[0] + white*0.0555179
			b[1] = 0.99332*b[1] + white*0.0750759
			b[2] = 0.96900*b[2] + white*0.1538520
			b[3] = 0.86650*b[3] + white*0.3104856
			b[4] = 0.55000*b[4] + white*0.5329522
			b[5] = -0.7616*b[5] - white*0.0168980
			data[i] = b[0] + b[1] + b[2] + b[3] + b[4] + b[5] + b[6] + white*0.5362
			b[6] = white * 0.115926
		}
	default:
		for i := range data {
			data[i] = g.randf()
		}
	}
}

// randi advances the Park-Miller minimal standard generator
// (16807 * seed mod 2^31-1) using Carta's division-free reduction.
func (g *Generator) randi() uint32 {
	lo := 16807 * (g.seed & 0xffff)
	hi := 16807 * (g.seed >> 16)
	lo += (hi & 0x7fff) << 16
	lo += hi >> 15
	lo = (lo & 0x7fffffff) + (lo >> 31)
	g.seed = lo

	return lo
}

// belowOne is the largest float32 less than 1.
const belowOne float32 = 1 - 1.0/(1<<24)

func (g *Generator) randf() float32 {
	return bipolar(g.randi())
}

// bipolar maps a 31-bit PRNG value to [-1, 1). The division runs in float64;
// values that would round up to 1 in float32 are held just below it.
func bipolar(r uint32) float32 {
	return min(float32(float64(r)/(1<<30)-1), belowOne)
}

// grandf returns a standard normal deviate using the polar Box-Muller
// method. Each pair costs one transform; the second value is cached.
func (g *Generator) grandf() float32 {
	if g.pass {
		g.pass = false
		return g.rn
	}

	var x1, x2, r float32
	for {
		x1 = g.randf()
		x2 = g.randf()
		r = x1*x1 + x2*x2

		if r < 1 && r >= 1e-22 {
			break
		}
	}

	f := float32(math.Sqrt(-2 * math.Log(float64(r)) / float64(r)))
	g.pass = true
	g.rn = f * x2

	return f * x1
}

func validSeed(seed uint32) uint32 {
	seed &= 0x7fffffff
	if seed == 0 || seed == 0x7fffffff {
		return 1
	}

	return seed
}
