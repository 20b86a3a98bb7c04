package analysis

import (
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-bci/dsp/core"
)

// planCache keeps one FFT plan per size; window analysis repeats the same
// few sizes for the lifetime of a session.
var planCache sync.Map // int -> *algofft.Plan[complex128]

func planFor(n int) (*algofft.Plan[complex128], error) {
	if p, ok := planCache.Load(n); ok {
		return p.(*algofft.Plan[complex128]), nil
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("analysis: failed to create FFT plan: %w", err)
	}
	actual, _ := planCache.LoadOrStore(n, plan)
	return actual.(*algofft.Plan[complex128]), nil
}

// Hann returns symmetric Hann window coefficients of length n.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// PSD returns the one-sided power spectral density of x in units²/Hz using a
// Hann-windowed periodogram zero padded to the next power of two. freqs[k]
// is the centre frequency of power[k]; both run from 0 to sampleRate/2.
func PSD(x []float64, sampleRate float64) (freqs, power []float64, err error) {
	if len(x) == 0 {
		return nil, nil, ErrEmptyInput
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, nil, err
	}

	n := max(2, core.NextPowerOfTwo(len(x)))
	plan, err := planFor(n)
	if err != nil {
		return nil, nil, err
	}

	w := Hann(len(x))
	windowed := make([]float64, len(x))
	vecmath.MulBlock(windowed, x, w)

	sq := make([]float64, len(w))
	vecmath.MulBlock(sq, w, w)
	s2 := 0.0
	for _, v := range sq {
		s2 += v
	}

	src := make([]complex128, n)
	for i, v := range windowed {
		src[i] = complex(v, 0)
	}
	spec := make([]complex128, n)
	if err := plan.Forward(spec, src); err != nil {
		return nil, nil, fmt.Errorf("analysis: forward FFT failed: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(spec[k])
		im[k] = imag(spec[k])
	}
	power = make([]float64, bins)
	vecmath.Power(power, re, im)

	scale := make([]float64, bins)
	norm := 1 / (sampleRate * s2)
	for k := range scale {
		scale[k] = 2 * norm
	}
	scale[0] = norm
	scale[bins-1] = norm
	vecmath.MulBlockInPlace(power, scale)

	freqs = make([]float64, bins)
	df := sampleRate / float64(n)
	for k := range freqs {
		freqs[k] = float64(k) * df
	}
	return freqs, power, nil
}

// BandPower integrates the PSD of x over [lo, hi] Hz.
func BandPower(x []float64, sampleRate, lo, hi float64) (float64, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return 0, err
	}
	if err := checkBand(sampleRate, lo, hi); err != nil {
		return 0, err
	}
	freqs, power, err := PSD(x, sampleRate)
	if err != nil {
		return 0, err
	}
	return integrate(freqs, power, lo, hi), nil
}

// BandPowers returns BandPower for every channel of block.
func BandPowers(block [][]float64, sampleRate, lo, hi float64) ([]float64, error) {
	if len(block) == 0 {
		return nil, ErrEmptyInput
	}
	out := make([]float64, len(block))
	for ch, row := range block {
		p, err := BandPower(row, sampleRate, lo, hi)
		if err != nil {
			return nil, fmt.Errorf("analysis: channel %d: %w", ch, err)
		}
		out[ch] = p
	}
	return out, nil
}

func integrate(freqs, power []float64, lo, hi float64) float64 {
	if len(freqs) < 2 {
		return 0
	}
	df := freqs[1] - freqs[0]
	sum := 0.0
	for k, f := range freqs {
		if f >= lo && f <= hi {
			sum += power[k]
		}
	}
	return sum * df
}

func checkSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}

func checkBand(sampleRate, lo, hi float64) error {
	if lo < 0 || hi < lo || hi > sampleRate/2 || !core.IsFinite(lo) || !core.IsFinite(hi) {
		return fmt.Errorf("%w: [%v, %v] Hz at %v Hz", ErrInvalidBand, lo, hi, sampleRate)
	}
	return nil
}
