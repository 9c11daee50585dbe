package core

import (
	"math"
	"testing"
)

func TestFill(t *testing.T) {
	buf := make([]float32, 5)
	Fill(buf, 0.5)
	for i, v := range buf {
		if v != 0.5 {
			t.Fatalf("buf[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestMul(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	Mul(data, []float32{2, 0.5, -1})
	want := []float32{2, 1, -3, 4}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("data[%d] = %v, want %v", i, data[i], want[i])
		}
	}
	Mul(nil, []float32{1})
}

func TestScaleAndEnergy(t *testing.T) {
	data := []float32{1, -2, 3}
	Scale(data, 2)
	want := []float32{2, -4, 6}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("data[%d] = %v, want %v", i, data[i], want[i])
		}
	}
	if e := Energy(data); math.Abs(float64(e)-56) > 1e-4 {
		t.Fatalf("Energy = %v, want 56", e)
	}
	if Energy(nil) != 0 {
		t.Fatal("Energy(nil) != 0")
	}
}

func TestPeaksAccumulates(t *testing.T) {
	lo, hi := Peaks([]float32{0.1, -0.3, 0.2}, 0, 0)
	if lo != -0.3 || hi != 0.2 {
		t.Fatalf("Peaks = (%v, %v), want (-0.3, 0.2)", lo, hi)
	}
	lo, hi = Peaks([]float32{0.5}, lo, hi)
	if lo != -0.3 || hi != 0.5 {
		t.Fatalf("accumulated Peaks = (%v, %v), want (-0.3, 0.5)", lo, hi)
	}
	lo, hi = Peaks(nil, lo, hi)
	if lo != -0.3 || hi != 0.5 {
		t.Fatal("empty block changed bounds")
	}
}

func TestBlockHelpersDoNotAllocate(t *testing.T) {
	data := make([]float32, 256)
	mult := make([]float32, 256)
	allocs := testing.AllocsPerRun(100, func() {
		Fill(data, 1)
		Mul(data, mult)
		Scale(data, 0.5)
		_, _ = Peaks(data, 0, 0)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}

func TestLogMeter(t *testing.T) {
	if got := LogMeter(0); math.Abs(float64(got)-1) > 1e-6 {
		t.Fatalf("LogMeter(0) = %v, want 1", got)
	}
	if got := LogMeter(-200); got != 0 {
		t.Fatalf("LogMeter(-200) = %v, want 0", got)
	}
	// (96/192)^8
	if got := LogMeter(-96); math.Abs(float64(got)-math.Pow(0.5, 8)) > 1e-7 {
		t.Fatalf("LogMeter(-96) = %v", got)
	}
	prev := float32(-1)
	for db := float32(-190); db <= 0; db += 10 {
		v := LogMeter(db)
		if v < prev {
			t.Fatalf("LogMeter not monotonic at %v dB", db)
		}
		prev = v
	}
}

func TestLogMeterCoeff(t *testing.T) {
	if LogMeterCoeff(0) != 0 || LogMeterCoeff(-1) != 0 {
		t.Fatal("non-positive coefficients must deflect 0")
	}
	if got := LogMeterCoeff(1); math.Abs(float64(got)-1) > 1e-6 {
		t.Fatalf("LogMeterCoeff(1) = %v, want 1", got)
	}
}
