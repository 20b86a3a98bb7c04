package decimate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidLength indicates a non-positive axis length.
	ErrInvalidLength = errors.New("decimate: invalid axis length")
	// ErrInvalidDensity indicates a non-positive target density.
	ErrInvalidDensity = errors.New("decimate: invalid density")
)

// searchRadius is the number of candidate divisors scanned on each side of x/n.
const searchRadius = 10

// Factor returns the number of positions f a mask over x samples should
// select to get close to n, with f an exact divisor of x.
//
// Candidates k run from max(1, x/n-10) up to x/n+10 (exclusive); each k
// that divides x proposes f = x/k. The first f with the smallest |f-n|
// wins. If no candidate in that window divides x, every divisor of x is
// considered with the same rule.
func Factor(x, n int) (int, error) {
	if x <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, x)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDensity, n)
	}

	base := max(1, x/n)
	if f, ok := nearestDivisor(x, n, max(1, base-searchRadius), base+searchRadius); ok {
		return f, nil
	}
	f, _ := nearestDivisor(x, n, 1, x+1)
	return f, nil
}

// nearestDivisor scans k in [lo, hi) and returns x/k closest to n.
func nearestDivisor(x, n, lo, hi int) (int, bool) {
	best, bestDiff := 0, math.MaxInt
	for k := lo; k < hi; k++ {
		if x%k != 0 {
			continue
		}
		f := x / k
		diff := f - n
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best, bestDiff = f, diff
		}
	}
	return best, best > 0
}

// Mask is an immutable selection over an axis of fixed length.
type Mask struct {
	bits    []bool
	indices []int
}

// NewMask builds the mask of length x selecting Factor(x, n) positions at
// round(i*x/f) for i in [0, f).
func NewMask(x, n int) (Mask, error) {
	f, err := Factor(x, n)
	if err != nil {
		return Mask{}, err
	}

	bits := make([]bool, x)
	indices := make([]int, 0, f)
	step := float64(x) / float64(f)
	for i := range f {
		idx := int(math.Round(float64(i) * step))
		if idx >= x || bits[idx] {
			continue
		}
		bits[idx] = true
		indices = append(indices, idx)
	}
	return Mask{bits: bits, indices: indices}, nil
}

// Len returns the axis length.
func (m Mask) Len() int { return len(m.bits) }

// Count returns the number of selected positions.
func (m Mask) Count() int { return len(m.indices) }

// Stride returns the distance between consecutive selected positions.
func (m Mask) Stride() int {
	if len(m.indices) == 0 {
		return 0
	}
	return len(m.bits) / len(m.indices)
}

// Selected reports whether position i is selected.
func (m Mask) Selected(i int) bool {
	return i >= 0 && i < len(m.bits) && m.bits[i]
}

// Indices returns a copy of the selected positions in ascending order.
func (m Mask) Indices() []int {
	return append([]int(nil), m.indices...)
}

// Bits returns a copy of the mask as a boolean slice.
func (m Mask) Bits() []bool {
	return append([]bool(nil), m.bits...)
}

// Apply appends the selected elements of src to dst[:0] and returns the
// result. src must have length Len.
func (m Mask) Apply(dst, src []float64) []float64 {
	if len(src) != len(m.bits) {
		panic(fmt.Sprintf("decimate: Apply source length %d, mask length %d", len(src), len(m.bits)))
	}
	dst = dst[:0]
	for _, i := range m.indices {
		dst = append(dst, src[i])
	}
	return dst
}

// Equal reports whether both masks select the same positions over the same axis.
func (m Mask) Equal(other Mask) bool {
	if len(m.bits) != len(other.bits) || len(m.indices) != len(other.indices) {
		return false
	}
	for i, v := range m.indices {
		if other.indices[i] != v {
			return false
		}
	}
	return true
}
