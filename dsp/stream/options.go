package stream

import "github.com/cwbudde/algo-bci/dsp/core"

// Config holds the construction parameters of a Buffer.
type Config struct {
	core.AcquisitionConfig

	// AuxSampleRate is the aux stream rate; zero means SampleRate.
	AuxSampleRate float64
	// Seconds is the retention window. The sign is ignored.
	Seconds float64
	// Fill initializes every cell before the first write.
	Fill float64
	// Density is the target column count of the resampled view.
	Density int
	// Boundary enables circular writes at construction.
	Boundary bool
}

// DefaultConfig returns a 30 s window of the default acquisition layout
// decimated to about 1000 columns.
func DefaultConfig() Config {
	return Config{
		AcquisitionConfig: core.DefaultAcquisitionConfig(),
		Seconds:           30,
		Density:           1000,
	}
}

// Option configures a Buffer.
type Option func(*options)

type options struct {
	cfg      Config
	observer Observer
}

// WithSampleRate sets the signal sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(o *options) {
		core.WithSampleRate(sampleRate)(&o.cfg.AcquisitionConfig)
	}
}

// WithChannels sets the signal channel count.
func WithChannels(channels int) Option {
	return func(o *options) {
		core.WithChannels(channels)(&o.cfg.AcquisitionConfig)
	}
}

// WithAuxChannels sets the aux channel count. Zero disables aux storage.
func WithAuxChannels(channels int) Option {
	return func(o *options) {
		core.WithAuxChannels(channels)(&o.cfg.AcquisitionConfig)
	}
}

// WithAcquisition applies acquisition options shared with other packages.
func WithAcquisition(opts ...core.AcquisitionOption) Option {
	return func(o *options) {
		for _, opt := range opts {
			if opt != nil {
				opt(&o.cfg.AcquisitionConfig)
			}
		}
	}
}

// WithAuxSampleRate sizes the aux ring for a stream sampled at rate Hz.
func WithAuxSampleRate(rate float64) Option {
	return func(o *options) {
		if rate > 0 {
			o.cfg.AuxSampleRate = rate
		}
	}
}

// WithSeconds sets the retention window in seconds.
func WithSeconds(seconds float64) Option {
	return func(o *options) {
		o.cfg.Seconds = seconds
	}
}

// WithFill sets the value of cells that have not been written yet.
func WithFill(fill float64) Option {
	return func(o *options) {
		o.cfg.Fill = fill
	}
}

// WithDensity sets the target column count of the resampled view.
func WithDensity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cfg.Density = n
		}
	}
}

// WithBoundary starts every ring in circular mode.
func WithBoundary() Option {
	return func(o *options) {
		o.cfg.Boundary = true
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithObserver sets the receiver of non-fatal condition events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}
