package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-bci/dsp/stream"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
acquisition:
  sample_rate: 500
  channels: 16
  aux_channels: 0
buffer:
  seconds: 4
  density: 200
  boundary: true
producer:
  chunk_size: 50
  duration: 2s
metrics:
  listen: ":9100"
logging:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Acquisition.SampleRate != 500 || cfg.Acquisition.Channels != 16 || cfg.Acquisition.AuxChannels != 0 {
		t.Errorf("acquisition = %+v", cfg.Acquisition)
	}
	if cfg.Buffer.Seconds != 4 || cfg.Buffer.Density != 200 || !cfg.Buffer.Boundary {
		t.Errorf("buffer = %+v", cfg.Buffer)
	}
	if cfg.Producer.ChunkSize != 50 || cfg.Producer.Duration != 2*time.Second {
		t.Errorf("producer = %+v", cfg.Producer)
	}
	if cfg.Producer.RhythmHz != 10 || cfg.Producer.Seed != 1 {
		t.Errorf("producer defaults lost: %+v", cfg.Producer)
	}
	if cfg.Publish.Interval != 100*time.Millisecond {
		t.Errorf("publish interval default lost: %v", cfg.Publish.Interval)
	}
	if cfg.Metrics.Listen != ":9100" || cfg.SlogLevel() != slog.LevelDebug || !cfg.Logging.JSON {
		t.Errorf("metrics/logging = %+v / %+v", cfg.Metrics, cfg.Logging)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if _, err := Load(writeConfig(t, "buffer: [1, 2")); err == nil || !strings.Contains(err.Error(), "parse yaml") {
		t.Fatalf("Load(bad yaml) error = %v", err)
	}
	if _, err := Load(writeConfig(t, "buffer:\n  density: 0\n")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load(density 0) error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"sample rate", func(c *Config) { c.Acquisition.SampleRate = 0 }},
		{"channels", func(c *Config) { c.Acquisition.Channels = 0 }},
		{"aux channels", func(c *Config) { c.Acquisition.AuxChannels = -1 }},
		{"aux rate", func(c *Config) { c.Acquisition.AuxSampleRate = -5 }},
		{"seconds", func(c *Config) { c.Buffer.Seconds = 0 }},
		{"density", func(c *Config) { c.Buffer.Density = -1 }},
		{"chunk size", func(c *Config) { c.Producer.ChunkSize = 0 }},
		{"duration", func(c *Config) { c.Producer.Duration = -time.Second }},
		{"publish interval", func(c *Config) { c.Publish.Listen = ":0"; c.Publish.Interval = 0 }},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestStreamOptions(t *testing.T) {
	cfg := Default()
	cfg.Acquisition.SampleRate = 100
	cfg.Acquisition.AuxSampleRate = 10
	cfg.Buffer.Seconds = -3
	cfg.Buffer.Boundary = true

	buf, err := stream.New(cfg.StreamOptions()...)
	if err != nil {
		t.Fatalf("stream.New() error = %v", err)
	}
	if buf.Capacity() != 300 || buf.AuxCapacity() != 30 {
		t.Fatalf("capacities = %d/%d, want 300/30", buf.Capacity(), buf.AuxCapacity())
	}
	if cur, _ := buf.Boundary(); !cur.Active() {
		t.Fatal("boundary not enabled")
	}
}

func TestNewSource(t *testing.T) {
	cfg := Default()
	cfg.Acquisition.Channels = 2
	cfg.Acquisition.AuxChannels = 0
	sig, aux, err := cfg.NewSource().Next(5)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(sig) != 2 || len(sig[0]) != 5 || aux != nil {
		t.Fatalf("chunk shape = %d×%d, aux %v", len(sig), len(sig[0]), aux)
	}
}
