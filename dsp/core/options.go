package core

// AcquisitionConfig describes the shape of an incoming sample stream.
type AcquisitionConfig struct {
	SampleRate  float64
	Channels    int
	AuxChannels int
}

// AcquisitionOption mutates an AcquisitionConfig.
type AcquisitionOption func(*AcquisitionConfig)

// DefaultAcquisitionConfig returns the layout of an 8-channel Cyton board
// streaming at 250 Hz with its 3-axis accelerometer on the aux channels.
func DefaultAcquisitionConfig() AcquisitionConfig {
	return AcquisitionConfig{
		SampleRate:  250,
		Channels:    8,
		AuxChannels: 3,
	}
}

// WithSampleRate sets the acquisition sample rate in Hz.
func WithSampleRate(sampleRate float64) AcquisitionOption {
	return func(cfg *AcquisitionConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the number of primary signal channels.
func WithChannels(channels int) AcquisitionOption {
	return func(cfg *AcquisitionConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithAuxChannels sets the number of auxiliary channels. Zero disables aux.
func WithAuxChannels(channels int) AcquisitionOption {
	return func(cfg *AcquisitionConfig) {
		if channels >= 0 {
			cfg.AuxChannels = channels
		}
	}
}

// ApplyAcquisitionOptions applies zero or more options to the default config.
func ApplyAcquisitionOptions(opts ...AcquisitionOption) AcquisitionConfig {
	cfg := DefaultAcquisitionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
