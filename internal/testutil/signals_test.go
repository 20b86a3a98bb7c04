package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(10, 250, 2, 50)
	if len(s) != 50 {
		t.Fatalf("len = %d, want 50", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// A quarter period at 10 Hz / 250 Hz is 6.25 samples; sample 25 is a full period.
	if math.Abs(s[25]) > 1e-12 {
		t.Fatalf("s[25] = %v, want 0", s[25])
	}
	for i, v := range s {
		if math.Abs(v) > 2 {
			t.Fatalf("s[%d] = %v exceeds amplitude", i, v)
		}
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(42, 0.5, 64)
	b := Noise(42, 0.5, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
	for i, v := range a {
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}
	if c := Noise(43, 0.5, 64); c[0] == a[0] && c[1] == a[1] {
		t.Fatal("different seeds produced the same prefix")
	}
}

func TestRampChunk(t *testing.T) {
	RequireBlockEqual(t, RampChunk(2, 3, 10), [][]float64{{10, 11, 12}, {110, 111, 112}})
}

func TestConstChunk(t *testing.T) {
	RequireBlockEqual(t, ConstChunk(3, 2, 0.25), [][]float64{{0.25, 0.25}, {0.25, 0.25}, {0.25, 0.25}})
}
