package testutil

import (
	"math"
	"math/rand/v2"
)

// Sine returns n samples of amplitude·sin(2π·freqHz·i/rate).
func Sine(freqHz, rate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freqHz / rate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

// Noise returns n uniform samples in [-amplitude, amplitude). The same seed
// always yields the same samples.
func Noise(seed uint64, amplitude float64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Const returns n samples set to value.
func Const(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// RampChunk builds a channels × n chunk where chunk[ch][i] = start + 100*ch + i.
// Every cell is unique for n <= 100, which makes column bookkeeping easy to check.
func RampChunk(channels, n int, start float64) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		row := make([]float64, n)
		for i := range row {
			row[i] = start + 100*float64(ch) + float64(i)
		}
		out[ch] = row
	}
	return out
}

// ConstChunk builds a channels × n chunk filled with value.
func ConstChunk(channels, n int, value float64) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = Const(value, n)
	}
	return out
}
