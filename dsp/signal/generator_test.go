package signal

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-rtdsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-rtdsp/dsp/filter/design"
	"github.com/cwbudde/algo-rtdsp/internal/testutil"
)

func TestRandiMinimalStandard(t *testing.T) {
	g := NewGenerator()

	want := []uint32{16807, 282475249, 1622650073, 984943658, 1144108930}
	for i, w := range want {
		if got := g.randi(); got != w {
			t.Fatalf("randi #%d = %d, want %d", i+1, got, w)
		}
	}

	g = NewGenerator()
	var last uint32
	for range 10000 {
		last = g.randi()
	}

	if last != 1043618065 {
		t.Fatalf("randi #10000 = %d, want 1043618065", last)
	}
}

func TestWithSeedRejectsFixedPoints(t *testing.T) {
	for _, seed := range []uint32{0, 0x7fffffff, 0x80000000} {
		if g := NewGenerator(WithSeed(seed)); g.Seed() != 1 {
			t.Fatalf("WithSeed(%#x): Seed() = %d, want 1", seed, g.Seed())
		}
	}

	if g := NewGenerator(WithSeed(42)); g.Seed() != 42 {
		t.Fatalf("Seed() = %d, want 42", g.Seed())
	}
}

func TestRunDeterministic(t *testing.T) {
	for _, typ := range []Type{TypeUniformWhiteNoise, TypeGaussianWhiteNoise, TypePinkNoise} {
		run := func() []float32 {
			g := NewGenerator(WithSeed(1234), WithType(typ))
			out := make([]float32, 1000)
			g.Run(out[:333])
			g.Run(out[333:])

			return out
		}

		testutil.RequireSliceNearlyEqual(t, run(), run(), 0)
	}
}

func TestSeedsDiffer(t *testing.T) {
	a := make([]float32, 16)
	b := make([]float32, 16)
	NewGenerator(WithSeed(1)).Run(a)
	NewGenerator(WithSeed(2)).Run(b)

	if d, _ := testutil.MaxAbsDiff(a, b); d == 0 {
		t.Fatal("different seeds produced identical output")
	}
}

func TestSetTypeKeepsSeed(t *testing.T) {
	g := NewGenerator(WithSeed(99))
	g.Run(make([]float32, 10))

	seed := g.Seed()
	g.SetType(TypePinkNoise)

	if g.Seed() != seed {
		t.Fatalf("SetType changed seed: %d -> %d", seed, g.Seed())
	}

	if g.Type() != TypePinkNoise {
		t.Fatalf("Type() = %v, want pink", g.Type())
	}

	// A fixed type-change schedule reproduces the same output.
	schedule := func() []float32 {
		g := NewGenerator(WithSeed(7))
		out := make([]float32, 300)
		g.Run(out[:100])
		g.SetType(TypeGaussianWhiteNoise)
		g.Run(out[100:201])
		g.SetType(TypePinkNoise)
		g.Run(out[201:])

		return out
	}
	testutil.RequireSliceNearlyEqual(t, schedule(), schedule(), 0)
}

func TestSetTypeDropsGaussianCache(t *testing.T) {
	g := NewGenerator(WithType(TypeGaussianWhiteNoise))
	g.Run(make([]float32, 1))

	if !g.pass {
		t.Fatal("expected a cached deviate after an odd-length run")
	}

	g.SetType(TypeGaussianWhiteNoise)
	if g.pass {
		t.Fatal("SetType kept the cached deviate")
	}
}

func TestUniformRangeAndMoments(t *testing.T) {
	g := NewGenerator(WithSeed(5))
	out := make([]float32, 1<<16)
	g.Run(out)

	x := make([]float64, len(out))
	for i, v := range out {
		if v < -1 || v >= 1 {
			t.Fatalf("sample %d = %v outside [-1, 1)", i, v)
		}
		x[i] = float64(v)
	}

	mean, variance := stat.MeanVariance(x, nil)
	if math.Abs(mean) > 0.01 {
		t.Fatalf("mean = %v, want ~0", mean)
	}
	if math.Abs(variance-1.0/3) > 0.01 {
		t.Fatalf("variance = %v, want ~1/3", variance)
	}
}

func TestGaussianMoments(t *testing.T) {
	g := NewGenerator(WithSeed(11), WithType(TypeGaussianWhiteNoise))
	out := make([]float32, 1<<16)
	g.Run(out)

	x := make([]float64, len(out))
	for i, v := range out {
		x[i] = float64(v)
	}

	mean, std := stat.MeanStdDev(x, nil)
	if math.Abs(mean) > 0.01 {
		t.Fatalf("mean = %v, want ~0", mean)
	}
	if math.Abs(std-gaussianGain) > 0.01 {
		t.Fatalf("std = %v, want ~%v", std, gaussianGain)
	}

	// Excess kurtosis of a normal distribution is 0; uniform is -1.2.
	if k := stat.ExKurtosis(x, nil); math.Abs(k) > 0.1 {
		t.Fatalf("excess kurtosis = %v, want ~0", k)
	}
}

// octaveEnergies measures the energy of x in octave bands centered on
// 250 Hz .. 4 kHz at 48 kHz.
func octaveEnergies(x []float32) []float64 {
	centers := []float64{250, 500, 1000, 2000, 4000}
	out := make([]float64, len(centers))

	buf := make([]float32, len(x))
	for i, fc := range centers {
		copy(buf, x)
		s := biquad.NewSection(design.Bandpass0dB(fc, math.Sqrt2, 48000))
		s.ProcessBlock(buf)

		var e float64
		for _, v := range buf[4096:] {
			e += float64(v) * float64(v)
		}
		out[i] = e
	}

	return out
}

func TestPinkEqualEnergyPerOctave(t *testing.T) {
	n := 1 << 19

	pink := make([]float32, n)
	NewGenerator(WithSeed(3), WithType(TypePinkNoise)).Run(pink)

	white := make([]float32, n)
	NewGenerator(WithSeed(3)).Run(white)

	pe := octaveEnergies(pink)
	we := octaveEnergies(white)

	for i := 1; i < len(pe); i++ {
		pinkStep := 10 * math.Log10(pe[i]/pe[i-1])
		whiteStep := 10 * math.Log10(we[i]/we[i-1])

		if math.Abs(pinkStep) > 1 {
			t.Fatalf("pink octave step %d = %.2f dB, want ~0", i, pinkStep)
		}
		if math.Abs(whiteStep-3.01) > 1 {
			t.Fatalf("white octave step %d = %.2f dB, want ~+3", i, whiteStep)
		}
	}
}

func TestRunDoesNotAllocate(t *testing.T) {
	g := NewGenerator()
	buf := make([]float32, 256)

	for _, typ := range []Type{TypeUniformWhiteNoise, TypeGaussianWhiteNoise, TypePinkNoise} {
		g.SetType(typ)
		allocs := testing.AllocsPerRun(50, func() {
			g.Run(buf)
		})
		if allocs != 0 {
			t.Fatalf("%v: allocs = %v, want 0", typ, allocs)
		}
	}
}

func TestTypeString(t *testing.T) {
	if TypePinkNoise.String() != "pink" || Type(9).String() != "Type(9)" {
		t.Fatal("unexpected Type.String result")
	}
}

func TestBipolarStaysBelowOne(t *testing.T) {
	tests := []struct {
		r    uint32
		want float32
	}{
		{0, -1},
		{1 << 30, 0},
		{1<<31 - 2, belowOne},
		{1<<31 - 64, belowOne},
	}
	for _, tt := range tests {
		if got := bipolar(tt.r); got != tt.want {
			t.Errorf("bipolar(%d) = %v, want %v", tt.r, got, tt.want)
		}
	}
	if belowOne != math.Nextafter32(1, 0) {
		t.Fatalf("belowOne = %v", belowOne)
	}
}
