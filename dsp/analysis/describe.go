package analysis

import "math"

// ChannelStats summarizes one channel of a window.
type ChannelStats struct {
	Samples    int
	Mean       float64
	StdDev     float64
	RMS        float64
	Min        float64
	Max        float64
	PeakToPeak float64
	// Kurtosis is the excess kurtosis; blink and muscle artifacts push it
	// well above 0.
	Kurtosis float64
}

// Describe computes ChannelStats in one pass with Welford's update.
// NaN samples are skipped.
func Describe(x []float64) ChannelStats {
	var (
		n                int
		mean, m2, m3, m4 float64
		sumSq            float64
		lo, hi           = math.Inf(1), math.Inf(-1)
	)

	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		n++
		nf := float64(n)
		delta := v - mean
		deltaN := delta / nf
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * (nf - 1)

		m4 += term1*deltaN2*(nf*nf-3*nf+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(nf-2) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += v * v
		lo = min(lo, v)
		hi = max(hi, v)
	}

	if n == 0 {
		return ChannelStats{}
	}

	nf := float64(n)
	variance := m2 / nf
	st := ChannelStats{
		Samples:    n,
		Mean:       mean,
		StdDev:     math.Sqrt(variance),
		RMS:        math.Sqrt(sumSq / nf),
		Min:        lo,
		Max:        hi,
		PeakToPeak: hi - lo,
	}
	if variance > 0 {
		st.Kurtosis = (m4/nf)/(variance*variance) - 3
	}
	return st
}

// DescribeBlock returns Describe for every channel of block.
func DescribeBlock(block [][]float64) []ChannelStats {
	out := make([]ChannelStats, len(block))
	for ch, row := range block {
		out[ch] = Describe(row)
	}
	return out
}
