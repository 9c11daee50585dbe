package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rtdsp/dsp/transform"
	"github.com/cwbudde/algo-rtdsp/internal/testutil"
)

func feed(p *Perceptual, x []float32, mode Mode) {
	buf := p.InputData()

	for len(x) > 0 {
		n := copy(buf, x)
		p.Process(n, mode)
		x = x[n:]
	}
}

func newPerceptual(t *testing.T, opts ...Option) *Perceptual {
	t.Helper()

	p, err := NewPerceptual(48000, opts...)
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func TestPerceptualUnwarpedBinCentredSine(t *testing.T) {
	p := newPerceptual(t)
	p.SetWfact(0)

	// Bin 32 of the 512-point transform is trace point 64.
	feed(p, testutil.Sine[float32](3000, 48000, 1, 1024), ModeNone)

	if got := peakBin(p, p.Bins()); got != 64 {
		t.Fatalf("peak at trace point %d, want 64", got)
	}

	if got := p.PowerAtBin(64, 1, false); math.Abs(float64(got)) > 0.05 {
		t.Fatalf("PowerAtBin(64) = %v dB, want 0", got)
	}

	if got := p.FreqAtBin(64); math.Abs(float64(got)-3000) > 1e-3 {
		t.Fatalf("FreqAtBin(64) = %v, want 3000", got)
	}
}

func TestPerceptualWarpedSinePeak(t *testing.T) {
	for _, freq := range []float64{100, 1000, 10000} {
		p := newPerceptual(t)
		feed(p, testutil.Sine[float32](freq, 48000, 1, 12000), ModeNone)

		bin := peakBin(p, p.Bins())
		if bin == 0 || bin == p.Bins()-1 {
			t.Fatalf("%v Hz: peak at edge point %d", freq, bin)
		}

		got := float64(p.FreqAtBin(bin))
		spacing := float64(p.FreqAtBin(bin+1) - p.FreqAtBin(bin-1))

		if math.Abs(got-freq) > spacing {
			t.Fatalf("%v Hz: peak at %v Hz (point %d), spacing %v", freq, got, bin, spacing)
		}

		if db := p.PowerAtBin(bin, 1, false); math.Abs(float64(db)) > 0.5 {
			t.Fatalf("%v Hz: peak level %v dB, want about 0", freq, db)
		}
	}
}

func TestPerceptualValidAfterFullWindow(t *testing.T) {
	p := newPerceptual(t)

	p.Process(511, ModeNone)

	if pw := p.Power(); pw.Valid || pw.Count != 3 {
		t.Fatalf("after 511 samples: valid=%v count=%d", pw.Valid, pw.Count)
	}

	p.Process(1, ModeNone)

	if pw := p.Power(); !pw.Valid || pw.Count != 4 {
		t.Fatalf("after 512 samples: valid=%v count=%d", pw.Valid, pw.Count)
	}

	if p.Peak().Count != 0 {
		t.Fatalf("peak trace updated outside ModePeak")
	}
}

func TestPerceptualAverageWithUnitSpeedTracksLastFrame(t *testing.T) {
	x := testutil.Noise[float32](3, 0.5, 4096)

	a := newPerceptual(t)
	a.SetSpeed(1)
	feed(a, x, ModeAverage)

	b := newPerceptual(t)
	feed(b, x, ModeNone)

	for i, want := range b.Power().Data {
		if got := a.Power().Data[i]; got != want {
			t.Fatalf("point %d: %v != %v", i, got, want)
		}
	}
}

func TestPerceptualPeakHoldsAbovePower(t *testing.T) {
	p := newPerceptual(t)
	p.SetSpeedPreset(SpeedFast)

	feed(p, testutil.Sine[float32](1000, 48000, 1, 8192), ModePeak)
	before := p.PMax()
	feed(p, make([]float32, 4096), ModePeak)

	pw, pk := p.Power(), p.Peak()
	if !pk.Valid {
		t.Fatal("peak trace not valid")
	}

	var maxPower float32

	for i := range pw.Data {
		if pk.Data[i] < pw.Data[i] {
			t.Fatalf("point %d: peak %v below power %v", i, pk.Data[i], pw.Data[i])
		}

		maxPower = max(maxPower, pw.Data[i])
	}

	if p.PMax() < maxPower {
		t.Fatalf("PMax %v below trace maximum %v", p.PMax(), maxPower)
	}

	if !(p.PMax() < before) {
		t.Fatalf("PMax did not decay: %v then %v", before, p.PMax())
	}
}

func TestPerceptualResetThenSilence(t *testing.T) {
	p := newPerceptual(t)
	feed(p, testutil.Noise[float32](1, 1, 6000), ModePeak)
	p.Reset()

	if p.Power().Valid || p.Power().Count != 0 || p.PMax() != 0 {
		t.Fatalf("Reset left state: %+v pmax=%v", p.Power().Count, p.PMax())
	}

	testutil.RequireAllZero(t, p.Power().Data)
	testutil.RequireAllZero(t, p.Peak().Data)

	feed(p, make([]float32, 2048), ModeAverage)

	for b := range p.Bins() {
		if db := p.PowerAtBin(b, 1, false); db > -200 {
			t.Fatalf("point %d after silence: %v dB", b, db)
		}
	}
}

func TestPerceptualPresets(t *testing.T) {
	p := newPerceptual(t)

	if got := p.Wfact(); math.Abs(float64(got)-0.766017) > 1e-5 {
		t.Fatalf("default wfact = %v", got)
	}

	if got := p.Speed(); math.Abs(float64(got)-0.00531914) > 1e-7 {
		t.Fatalf("default speed = %v", got)
	}

	tests := []struct {
		warp Warp
		want float64
	}{
		{WarpBark, 0.766017},
		{WarpMedium, 0.383009},
		{WarpHigh, 0.858009},
	}

	for _, tt := range tests {
		p.SetWarp(tt.warp)

		if got := p.Wfact(); math.Abs(float64(got)-tt.want) > 1e-5 {
			t.Fatalf("%s: wfact = %v, want %v", tt.warp, got, tt.want)
		}
	}

	p.SetWarp(Warp(9))

	if got := p.Wfact(); math.Abs(float64(got)-0.858009) > 1e-5 {
		t.Fatalf("unknown warp changed wfact to %v", got)
	}

	prev := float32(0)
	for s := SpeedNoise; s >= SpeedRapid; s-- {
		p.SetSpeedPreset(s)

		want := -math.Expm1(-128 / (s.TimeConstant() * 48000))
		if got := p.Speed(); math.Abs(float64(got)-want) > 1e-7 {
			t.Fatalf("%s: speed = %v, want %v", s, got, want)
		}

		if p.Speed() <= prev {
			t.Fatalf("%s: speed %v not faster than %v", s, p.Speed(), prev)
		}

		prev = p.Speed()
	}
}

func TestPerceptualRawSettersClamp(t *testing.T) {
	p := newPerceptual(t)

	p.SetSpeed(0)
	if p.Speed() <= 0 {
		t.Fatalf("SetSpeed(0) = %v, want > 0", p.Speed())
	}

	p.SetSpeed(4)
	if p.Speed() != 1 {
		t.Fatalf("SetSpeed(4) = %v, want 1", p.Speed())
	}

	p.SetWfact(2)
	if p.Wfact() != maxWfact {
		t.Fatalf("SetWfact(2) = %v, want %v", p.Wfact(), maxWfact)
	}

	p.SetWfact(float32(math.NaN()))
	if p.Wfact() != 0 {
		t.Fatalf("SetWfact(NaN) = %v, want 0", p.Wfact())
	}
}

func TestPerceptualFrequencyAxis(t *testing.T) {
	p := newPerceptual(t)

	for _, w := range []Warp{WarpBark, WarpMedium, WarpHigh} {
		p.SetWarp(w)

		if got := p.FreqAtBin(0); got != 0 {
			t.Fatalf("%s: FreqAtBin(0) = %v", w, got)
		}

		if got := p.FreqAtBin(p.Bins() - 1); math.Abs(float64(got)-24000) > 0.5 {
			t.Fatalf("%s: FreqAtBin(last) = %v, want 24000", w, got)
		}

		for b := 1; b < p.Bins(); b++ {
			if p.FreqAtBin(b) <= p.FreqAtBin(b-1) {
				t.Fatalf("%s: axis not increasing at %d", w, b)
			}
		}
	}
}

func TestPerceptualPinkCorrectionUnwarped(t *testing.T) {
	p := newPerceptual(t)
	p.SetWfact(0)
	feed(p, testutil.Noise[float32](5, 1, 2048), ModeNone)

	for _, b := range []int{4, 33, 200, 511} {
		d := float64(p.PowerAtBin(b, 1, true) - p.PowerAtBin(b, 1, false))
		if math.Abs(d-10*math.Log10(float64(b))) > 1e-3 {
			t.Fatalf("point %d: pink weighting %v dB, want %v", b, d, 10*math.Log10(float64(b)))
		}
	}

	if got := p.PowerAtBin(p.Bins(), 1, false); !math.IsInf(float64(got), -1) {
		t.Fatalf("out of range point = %v", got)
	}
}

func TestWarpFreq(t *testing.T) {
	for _, f := range []float64{0.001, 0.1, 0.25, 0.4} {
		if got := WarpFreq(0, f); math.Abs(got-f) > 1e-12 {
			t.Fatalf("WarpFreq(0, %v) = %v", f, got)
		}

		for _, w := range []float64{0.3, 0.766, -0.5} {
			if got := WarpFreq(-w, WarpFreq(w, f)); math.Abs(got-f) > 1e-12 {
				t.Fatalf("round trip w=%v f=%v: %v", w, f, got)
			}
		}
	}

	if got := WarpFreq(0.5, 0.01); got <= 0.01 {
		t.Fatalf("positive warp must stretch low frequencies, got %v", got)
	}
}

func TestWithInputSize(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1},
		{256, 256},
		{100000, MaxInputSize},
	}

	for _, tt := range tests {
		p := newPerceptual(t, WithInputSize(tt.n))

		if got := len(p.InputData()); got != tt.want {
			t.Fatalf("WithInputSize(%d): len = %d, want %d", tt.n, got, tt.want)
		}
	}

	p := newPerceptual(t, WithInputSize(64))
	p.Process(1000, ModeNone)
	p.Process(-5, ModeNone)

	if p.Power().Count != 0 {
		t.Fatalf("64 samples produced %d frames", p.Power().Count)
	}

	p.Process(64, ModeNone)

	if p.Power().Count != 1 {
		t.Fatalf("128 samples produced %d frames, want 1", p.Power().Count)
	}
}

func TestParsePresets(t *testing.T) {
	for s := SpeedRapid; s <= SpeedNoise; s++ {
		got, err := ParseSpeed(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseSpeed(%q) = %v, %v", s.String(), got, err)
		}
	}

	for w := WarpBark; w <= WarpHigh; w++ {
		got, err := ParseWarp(w.String())
		if err != nil || got != w {
			t.Fatalf("ParseWarp(%q) = %v, %v", w.String(), got, err)
		}
	}

	if _, err := ParseSpeed("glacial"); err == nil {
		t.Fatal("expected error for unknown speed")
	}

	if _, err := ParseWarp("mel"); err == nil {
		t.Fatal("expected error for unknown warp")
	}

	if Speed(42).String() != "Speed(42)" || Warp(-1).String() != "Warp(-1)" {
		t.Fatal("unexpected names for unknown presets")
	}
}

func TestPerceptualBackendsAgree(t *testing.T) {
	x := testutil.Noise[float32](11, 0.5, 2048)

	a := newPerceptual(t)
	b := newPerceptual(t, WithTransform(transform.NewGonum))
	feed(a, x, ModeAverage)
	feed(b, x, ModeAverage)

	for i := range a.Power().Data {
		d := math.Abs(float64(a.Power().Data[i] - b.Power().Data[i]))
		if d > 1e-6*math.Max(1, float64(a.Power().Data[i])) {
			t.Fatalf("point %d differs by %v", i, d)
		}
	}
}

func TestNewPerceptualRejectsBadRate(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewPerceptual(rate); err == nil {
			t.Fatalf("NewPerceptual(%v): expected error", rate)
		}
	}
}

func TestPerceptualProcessNoAllocs(t *testing.T) {
	p := newPerceptual(t)
	copy(p.InputData(), testutil.Noise[float32](2, 0.5, MaxInputSize))

	allocs := testing.AllocsPerRun(5, func() {
		p.Process(MaxInputSize, ModePeak)
		_ = p.PowerAtBin(100, 1, true)
	})

	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}

func BenchmarkPerceptualProcess(b *testing.B) {
	p, err := NewPerceptual(48000)
	if err != nil {
		b.Fatal(err)
	}

	copy(p.InputData(), testutil.Noise[float32](2, 0.5, MaxInputSize))

	b.ReportAllocs()
	b.SetBytes(MaxInputSize * 4)

	for range b.N {
		p.Process(MaxInputSize, ModeAverage)
	}
}
