// Package config loads the YAML session file of the bcistream command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-bci/dsp/core"
	"github.com/cwbudde/algo-bci/dsp/signal"
	"github.com/cwbudde/algo-bci/dsp/stream"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	Buffer      BufferConfig      `yaml:"buffer"`
	Producer    ProducerConfig    `yaml:"producer"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Publish     PublishConfig     `yaml:"publish"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type AcquisitionConfig struct {
	SampleRate    float64 `yaml:"sample_rate"`
	Channels      int     `yaml:"channels"`
	AuxChannels   int     `yaml:"aux_channels"`
	AuxSampleRate float64 `yaml:"aux_sample_rate"`
}

type BufferConfig struct {
	Seconds  float64 `yaml:"seconds"`
	Fill     float64 `yaml:"fill"`
	Density  int     `yaml:"density"`
	Boundary bool    `yaml:"boundary"`
}

// ProducerConfig drives the simulated acquisition loop.
type ProducerConfig struct {
	ChunkSize int           `yaml:"chunk_size"`
	Duration  time.Duration `yaml:"duration"`
	Realtime  bool          `yaml:"realtime"`
	Seed      int64         `yaml:"seed"`
	RhythmHz  float64       `yaml:"rhythm_hz"`
	Amplitude float64       `yaml:"amplitude"`
	Noise     float64       `yaml:"noise"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

type PublishConfig struct {
	Listen   string        `yaml:"listen"`
	Interval time.Duration `yaml:"interval"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	acq := core.DefaultAcquisitionConfig()
	buf := stream.DefaultConfig()
	return Config{
		Acquisition: AcquisitionConfig{
			SampleRate:  acq.SampleRate,
			Channels:    acq.Channels,
			AuxChannels: acq.AuxChannels,
		},
		Buffer: BufferConfig{
			Seconds: buf.Seconds,
			Density: buf.Density,
		},
		Producer: ProducerConfig{
			ChunkSize: 25,
			Duration:  10 * time.Second,
			Seed:      1,
			RhythmHz:  10,
			Amplitude: 50,
			Noise:     5,
		},
		Publish: PublishConfig{
			Interval: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	a, b, p := c.Acquisition, c.Buffer, c.Producer
	switch {
	case a.SampleRate <= 0:
		return fmt.Errorf("%w: acquisition.sample_rate must be > 0, got %v", ErrInvalid, a.SampleRate)
	case a.Channels <= 0:
		return fmt.Errorf("%w: acquisition.channels must be > 0, got %d", ErrInvalid, a.Channels)
	case a.AuxChannels < 0:
		return fmt.Errorf("%w: acquisition.aux_channels must be >= 0, got %d", ErrInvalid, a.AuxChannels)
	case a.AuxSampleRate < 0:
		return fmt.Errorf("%w: acquisition.aux_sample_rate must be >= 0, got %v", ErrInvalid, a.AuxSampleRate)
	case b.Seconds == 0:
		return fmt.Errorf("%w: buffer.seconds must not be 0", ErrInvalid)
	case b.Density <= 0:
		return fmt.Errorf("%w: buffer.density must be > 0, got %d", ErrInvalid, b.Density)
	case p.ChunkSize <= 0:
		return fmt.Errorf("%w: producer.chunk_size must be > 0, got %d", ErrInvalid, p.ChunkSize)
	case p.Duration < 0:
		return fmt.Errorf("%w: producer.duration must be >= 0, got %v", ErrInvalid, p.Duration)
	case c.Publish.Listen != "" && c.Publish.Interval <= 0:
		return fmt.Errorf("%w: publish.interval must be > 0, got %v", ErrInvalid, c.Publish.Interval)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// StreamOptions converts the acquisition and buffer sections into
// stream.New options.
func (c *Config) StreamOptions() []stream.Option {
	opts := []stream.Option{
		stream.WithSampleRate(c.Acquisition.SampleRate),
		stream.WithChannels(c.Acquisition.Channels),
		stream.WithAuxChannels(c.Acquisition.AuxChannels),
		stream.WithAuxSampleRate(c.Acquisition.AuxSampleRate),
		stream.WithSeconds(c.Buffer.Seconds),
		stream.WithFill(c.Buffer.Fill),
		stream.WithDensity(c.Buffer.Density),
	}
	if c.Buffer.Boundary {
		opts = append(opts, stream.WithBoundary())
	}
	return opts
}

// NewSource builds the simulated producer described by the file.
func (c *Config) NewSource() *signal.Source {
	return signal.NewSource(
		[]core.AcquisitionOption{
			core.WithSampleRate(c.Acquisition.SampleRate),
			core.WithChannels(c.Acquisition.Channels),
			core.WithAuxChannels(c.Acquisition.AuxChannels),
		},
		signal.WithSeed(c.Producer.Seed),
		signal.WithRhythm(c.Producer.RhythmHz),
		signal.WithAmplitude(c.Producer.Amplitude),
		signal.WithNoise(c.Producer.Noise),
	)
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Logging.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: logging.level %q", ErrInvalid, s)
	}
}
