package core

import "testing"

func TestApplyAcquisitionOptions(t *testing.T) {
	cfg := ApplyAcquisitionOptions(WithSampleRate(500), WithChannels(16), WithAuxChannels(0))
	if cfg.SampleRate != 500 {
		t.Fatalf("sample rate = %v, want 500", cfg.SampleRate)
	}
	if cfg.Channels != 16 {
		t.Fatalf("channels = %d, want 16", cfg.Channels)
	}
	if cfg.AuxChannels != 0 {
		t.Fatalf("aux channels = %d, want 0", cfg.AuxChannels)
	}
}

func TestInvalidAcquisitionOptionsIgnored(t *testing.T) {
	cfg := ApplyAcquisitionOptions(WithSampleRate(0), WithChannels(-1), WithAuxChannels(-3), nil)
	def := DefaultAcquisitionConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
