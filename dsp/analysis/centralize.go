package analysis

import (
	"github.com/cwbudde/algo-bci/dsp/core"
)

// Centralize returns a copy of block with each channel's mean removed.
// Non-finite results become 0, so a channel containing NaN comes back as
// zeros. When normalize > 0 every channel is additionally scaled so that its
// peak-to-peak range equals normalize; a flat channel stays 0.
func Centralize(block [][]float64, normalize float64) [][]float64 {
	out := core.CopyBlock(block)
	for _, row := range out {
		centralizeRow(row, normalize)
	}
	return out
}

func centralizeRow(row []float64, normalize float64) {
	if len(row) == 0 {
		return
	}

	mean := 0.0
	for _, v := range row {
		mean += v
	}
	mean /= float64(len(row))

	lo, hi := 0.0, 0.0
	for i, v := range row {
		c := core.FiniteOr(v-mean, 0)
		row[i] = c
		if i == 0 || c < lo {
			lo = c
		}
		if i == 0 || c > hi {
			hi = c
		}
	}

	if normalize <= 0 {
		return
	}
	scale := normalize / (hi - lo)
	for i, v := range row {
		row[i] = core.FiniteOr(v*scale, 0)
	}
}
