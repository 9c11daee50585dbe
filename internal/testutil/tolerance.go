package testutil

import (
	"fmt"
	"math"
	"testing"
)

// worst returns the index and size of the largest absolute difference
// between a and b, which must have equal length. idx is -1 for empty input.
func worst[F Float](a, b []F) (idx int, diff float64) {
	idx = -1
	for i := range a {
		if d := math.Abs(float64(a[i]) - float64(b[i])); idx < 0 || d > diff {
			idx, diff = i, d
		}
	}
	return idx, diff
}

// MaxAbsDiff returns the largest absolute element difference of a and b.
func MaxAbsDiff[F Float](a, b []F) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: lengths differ (%d, %d)", len(a), len(b))
	}
	_, d := worst(a, b)
	return d, nil
}

// RequireSliceNearlyEqual stops the test when got and want differ in length
// or when the worst element deviates by more than tol.
func RequireSliceNearlyEqual[F Float](t *testing.T, got, want []F, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(got)=%d len(want)=%d", len(got), len(want))
	}
	if i, d := worst(got, want); i >= 0 && !(d <= tol) {
		t.Fatalf("sample %d: got %v want %v (|diff| %g > %g)", i, got[i], want[i], d, tol)
	}
}

// RequireAllZero stops the test at the first non-zero sample.
func RequireAllZero[F Float](t *testing.T, data []F) {
	t.Helper()
	for i, v := range data {
		if v != 0 {
			t.Fatalf("sample %d = %v, expected silence", i, v)
		}
	}
}

// RequireFinite stops the test at the first NaN or infinite sample.
func RequireFinite[F Float](t *testing.T, data []F) {
	t.Helper()
	for i, v := range data {
		if x := float64(v); math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("sample %d = %v, expected a finite value", i, v)
		}
	}
}
