package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair differs by at most eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if i, err := mismatch(got, want, eps); err != nil {
		t.Fatalf("index %d: %v", i, err)
	}
}

// RequireBlockEqual fails t unless got and want have the same channel
// layout and identical samples.
func RequireBlockEqual(t *testing.T, got, want [][]float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d channels, want %d", len(got), len(want))
	}
	for ch := range got {
		if i, err := mismatch(got[ch], want[ch], 0); err != nil {
			t.Fatalf("channel %d index %d: %v", ch, i, err)
		}
	}
}

// RequireFinite fails t on the first NaN or infinite sample.
func RequireFinite(t *testing.T, row []float64) {
	t.Helper()
	for i, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite sample %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute sample difference between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length %d vs %d", len(a), len(b))
	}
	worst := 0.0
	for i := range a {
		worst = max(worst, math.Abs(a[i]-b[i]))
	}
	return worst, nil
}

// mismatch returns the first index where got and want differ by more than
// eps. A length difference is reported at index -1.
func mismatch(got, want []float64, eps float64) (int, error) {
	if len(got) != len(want) {
		return -1, fmt.Errorf("length %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps || (math.IsNaN(d) && got[i] != want[i]) {
			return i, fmt.Errorf("got %v, want %v (diff %v > %v)", got[i], want[i], d, eps)
		}
	}
	return 0, nil
}
