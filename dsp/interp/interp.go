package interp

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints indicates fewer than two known points.
	ErrTooFewPoints = errors.New("interp: need at least two known points")
	// ErrLengthMismatch indicates value and mask slices of different length.
	ErrLengthMismatch = errors.New("interp: length mismatch")
	// ErrNonFinite indicates a known point that is NaN or ±Inf.
	ErrNonFinite = errors.New("interp: non-finite known point")
)

// Linear2 interpolates from x0 (t=0) to x1 (t=1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Linspace fills dst with len(dst) evenly spaced values starting at start.
// With endpoint the last value equals stop; without it the spacing is
// (stop-start)/len(dst) and stop is excluded. It returns dst.
func Linspace(dst []float64, start, stop float64, endpoint bool) []float64 {
	n := len(dst)
	if n == 0 {
		return dst
	}
	div := float64(n)
	if endpoint {
		div = float64(n - 1)
	}
	if div == 0 {
		dst[0] = start
		return dst
	}
	step := (stop - start) / div
	for i := range dst {
		dst[i] = start + float64(i)*step
	}
	if endpoint {
		dst[n-1] = stop
	}
	return dst
}

// FillSparse overwrites every entry of values whose known flag is false.
// Entries between two known points are linearly interpolated; entries
// before the first or after the last known point are extrapolated with the
// slope of the nearest segment. values is left untouched on error.
func FillSparse(values []float64, known []bool) error {
	if len(values) != len(known) {
		return fmt.Errorf("%w: %d values, %d flags", ErrLengthMismatch, len(values), len(known))
	}

	idx := make([]int, 0, 16)
	for i, k := range known {
		if !k {
			continue
		}
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		idx = append(idx, i)
	}
	if len(idx) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(idx))
	}

	for s := 0; s+1 < len(idx); s++ {
		a, b := idx[s], idx[s+1]
		span := float64(b - a)
		for i := a + 1; i < b; i++ {
			values[i] = Linear2(float64(i-a)/span, values[a], values[b])
		}
	}

	first, second := idx[0], idx[1]
	slope := (values[second] - values[first]) / float64(second-first)
	for i := 0; i < first; i++ {
		values[i] = values[first] - float64(first-i)*slope
	}

	prev, last := idx[len(idx)-2], idx[len(idx)-1]
	slope = (values[last] - values[prev]) / float64(last-prev)
	for i := last + 1; i < len(values); i++ {
		values[i] = values[last] + float64(i-last)*slope
	}
	return nil
}
