package core

// NewBlock returns a channels × samples block filled with fill.
// All rows share one backing array so the block is a single allocation.
func NewBlock(channels, samples int, fill float64) [][]float64 {
	if channels <= 0 {
		return nil
	}
	if samples < 0 {
		samples = 0
	}
	backing := make([]float64, channels*samples)
	if fill != 0 {
		Fill(backing, fill)
	}
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = backing[ch*samples : (ch+1)*samples : (ch+1)*samples]
	}
	return out
}

// BlockShape reports the channel and sample count of a block.
// ok is false when rows have different lengths.
func BlockShape(block [][]float64) (channels, samples int, ok bool) {
	channels = len(block)
	if channels == 0 {
		return 0, 0, true
	}
	samples = len(block[0])
	for _, row := range block[1:] {
		if len(row) != samples {
			return channels, samples, false
		}
	}
	return channels, samples, true
}

// CopyBlock returns a deep copy of block.
func CopyBlock(block [][]float64) [][]float64 {
	if block == nil {
		return nil
	}
	channels, samples, ok := BlockShape(block)
	if !ok {
		out := make([][]float64, channels)
		for ch, row := range block {
			out[ch] = append([]float64(nil), row...)
		}
		return out
	}
	out := NewBlock(channels, samples, 0)
	for ch, row := range block {
		copy(out[ch], row)
	}
	return out
}

// Fill sets every value in buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}
