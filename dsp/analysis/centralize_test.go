package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-bci/internal/testutil"
)

func TestCentralizeRemovesMean(t *testing.T) {
	in := [][]float64{{1, 2, 3}, {10, 10, 10}}
	got := Centralize(in, 0)
	testutil.RequireBlockEqual(t, got, [][]float64{{-1, 0, 1}, {0, 0, 0}})
	if in[0][0] != 1 {
		t.Fatal("Centralize modified its input")
	}
}

func TestCentralizeNormalize(t *testing.T) {
	got := Centralize([][]float64{{0, 4, 8}, {5, 5, 5}}, 2)
	testutil.RequireSliceNearlyEqual(t, got[0], []float64{-1, 0, 1}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, got[1], []float64{0, 0, 0}, 0)
}

func TestCentralizeNonFinite(t *testing.T) {
	got := Centralize([][]float64{{1, math.NaN(), 3}, {math.Inf(1), 0}}, 1)
	for _, row := range got {
		testutil.RequireFinite(t, row)
		for _, v := range row {
			if v != 0 {
				t.Fatalf("non-finite channel produced %v, want 0", v)
			}
		}
	}
}

func TestCentralizeEmpty(t *testing.T) {
	got := Centralize([][]float64{{}}, 1)
	if len(got) != 1 || len(got[0]) != 0 {
		t.Fatalf("Centralize(empty) = %v", got)
	}
}
