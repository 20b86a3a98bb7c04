package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff() = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("MaxAbsDiff() accepted slices of different length")
	}
}

func TestMismatch(t *testing.T) {
	tests := []struct {
		name      string
		got, want []float64
		eps       float64
		index     int
		fail      bool
	}{
		{"equal", []float64{1, 2}, []float64{1, 2}, 0, 0, false},
		{"within eps", []float64{1, 2}, []float64{1, 2 + 1e-13}, 1e-12, 0, false},
		{"outside eps", []float64{1, 2, 3}, []float64{1, 2, 3.1}, 1e-3, 2, true},
		{"length", []float64{1}, []float64{1, 2}, 0, -1, true},
		{"nan", []float64{math.NaN()}, []float64{0}, 1, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			i, err := mismatch(tc.got, tc.want, tc.eps)
			if (err != nil) != tc.fail || i != tc.index {
				t.Fatalf("mismatch() = %d, %v; want index %d, fail %v", i, err, tc.index, tc.fail)
			}
		})
	}
}

func TestRequireHelpersAcceptEqualInput(t *testing.T) {
	RequireBlockEqual(t, [][]float64{{1, 2}, {3, 4}}, [][]float64{{1, 2}, {3, 4}})
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-13}, 1e-12)
	RequireFinite(t, []float64{0, -1, 1e300})
}
