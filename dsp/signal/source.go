package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-bci/dsp/core"
)

// Source emits chunks of a synthetic recording.
type Source struct {
	cfg       core.AcquisitionConfig
	seed      int64
	amplitude float64
	noise     float64
	rhythmHz  float64
	auxHz     float64

	rng     *rand.Rand
	emitted int64
}

// Option configures a Source.
type Option func(*Source)

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(s *Source) {
		s.seed = seed
	}
}

// WithAmplitude sets the rhythm amplitude in signal units.
func WithAmplitude(amplitude float64) Option {
	return func(s *Source) {
		if amplitude >= 0 {
			s.amplitude = amplitude
		}
	}
}

// WithNoise sets the peak noise amplitude. Zero disables noise.
func WithNoise(amplitude float64) Option {
	return func(s *Source) {
		if amplitude >= 0 {
			s.noise = amplitude
		}
	}
}

// WithRhythm sets the rhythm frequency of channel 0. Channel ch runs at
// freqHz + 0.5*ch so channels stay distinguishable in a plot.
func WithRhythm(freqHz float64) Option {
	return func(s *Source) {
		if freqHz > 0 {
			s.rhythmHz = freqHz
		}
	}
}

// NewSource creates a source for the given acquisition layout.
func NewSource(acq []core.AcquisitionOption, opts ...Option) *Source {
	s := &Source{
		cfg:       core.ApplyAcquisitionOptions(acq...),
		seed:      1,
		amplitude: 50,
		noise:     5,
		rhythmHz:  10,
		auxHz:     0.2,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	return s
}

// Config returns the acquisition layout.
func (s *Source) Config() core.AcquisitionConfig {
	return s.cfg
}

// Elapsed returns the recording time covered by the chunks emitted so far.
func (s *Source) Elapsed() float64 {
	return float64(s.emitted) / s.cfg.SampleRate
}

// Reset rewinds the source to its first sample and reseeds the noise.
func (s *Source) Reset() {
	s.emitted = 0
	s.rng = rand.New(rand.NewSource(s.seed))
}

// Next returns the next n samples. aux is nil when the layout has no
// auxiliary channels.
func (s *Source) Next(n int) (sig, aux [][]float64, err error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("signal: chunk samples must be > 0: %d", n)
	}

	sig = core.NewBlock(s.cfg.Channels, n, 0)
	noise := make([]float64, n)
	for ch, row := range sig {
		step := 2 * math.Pi * (s.rhythmHz + 0.5*float64(ch)) / s.cfg.SampleRate
		for i := range row {
			row[i] = math.Sin(step * float64(s.emitted+int64(i)))
		}
		vecmath.ScaleBlock(row, row, s.amplitude)
		if s.noise > 0 {
			for i := range noise {
				noise[i] = (s.rng.Float64()*2 - 1) * s.noise
			}
			vecmath.AddBlockInPlace(row, noise)
		}
	}

	if s.cfg.AuxChannels > 0 {
		aux = core.NewBlock(s.cfg.AuxChannels, n, 0)
		step := 2 * math.Pi * s.auxHz / s.cfg.SampleRate
		for ch, row := range aux {
			phase := float64(ch) * math.Pi / 3
			for i := range row {
				row[i] = math.Sin(step*float64(s.emitted+int64(i)) + phase)
			}
		}
	}

	s.emitted += int64(n)
	return sig, aux, nil
}
