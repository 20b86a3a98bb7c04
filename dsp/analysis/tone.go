package analysis

import (
	"fmt"
	"math"
)

// Tone tracks the DFT term of a single frequency with the Goertzel
// recursion, for steady-state evoked responses at known stimulus rates.
// Samples accumulate across Process calls until Reset.
type Tone struct {
	frequency float64
	coeff     float64
	s0, s1    float64
	n         int
}

// NewTone returns a detector for frequency Hz at sampleRate Hz.
func NewTone(frequency, sampleRate float64) (*Tone, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if err := checkBand(sampleRate, frequency, frequency); err != nil {
		return nil, err
	}
	return &Tone{
		frequency: frequency,
		coeff:     2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Frequency returns the detector frequency in Hz.
func (t *Tone) Frequency() float64 { return t.frequency }

// Reset drops all accumulated samples.
func (t *Tone) Reset() {
	t.s0, t.s1, t.n = 0, 0, 0
}

// Process feeds samples into the recursion.
func (t *Tone) Process(x []float64) {
	s0, s1, c := t.s0, t.s1, t.coeff
	for _, v := range x {
		s0, s1 = v+c*s0-s1, s0
	}
	t.s0, t.s1 = s0, s1
	t.n += len(x)
}

// Power returns |X(f)|² over the samples processed so far.
func (t *Tone) Power() float64 {
	return max(0, t.s0*t.s0+t.s1*t.s1-t.coeff*t.s0*t.s1)
}

// Amplitude returns the peak amplitude estimate 2|X(f)|/N. It is exact for
// a sinusoid completing a whole number of cycles in the processed samples.
func (t *Tone) Amplitude() float64 {
	if t.n == 0 {
		return 0
	}
	return 2 * math.Sqrt(t.Power()) / float64(t.n)
}

// ToneAmplitudes returns, for each channel of block, the amplitude at each
// of freqs. The result is indexed [channel][frequency].
func ToneAmplitudes(block [][]float64, freqs []float64, sampleRate float64) ([][]float64, error) {
	if len(block) == 0 || len(freqs) == 0 {
		return nil, ErrEmptyInput
	}
	tones := make([]*Tone, len(freqs))
	for i, f := range freqs {
		tone, err := NewTone(f, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("analysis: tone %d: %w", i, err)
		}
		tones[i] = tone
	}

	out := make([][]float64, len(block))
	for ch, row := range block {
		out[ch] = make([]float64, len(tones))
		for i, tone := range tones {
			tone.Reset()
			tone.Process(row)
			out[ch][i] = tone.Amplitude()
		}
	}
	return out, nil
}
