package stream

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-bci/dsp/core"
	"github.com/cwbudde/algo-bci/dsp/decimate"
	"github.com/cwbudde/algo-bci/dsp/ring"
	"github.com/cwbudde/algo-bci/dsp/timestamp"
)

var (
	// ErrInvalidCapacity indicates a window that holds no samples or no channels.
	ErrInvalidCapacity = ring.ErrInvalidCapacity
	// ErrChannelMismatch indicates a chunk with the wrong channel layout.
	ErrChannelMismatch = ring.ErrChannelMismatch
	// ErrOversizeChunk indicates a chunk longer than the window.
	ErrOversizeChunk = ring.ErrOversizeChunk
	// ErrInvalidTimestamp indicates a NaN or infinite chunk timestamp.
	ErrInvalidTimestamp = timestamp.ErrInvalidTimestamp
	// ErrAuxSizeMismatch is carried by ConditionAuxSizeMismatch events.
	ErrAuxSizeMismatch = errors.New("stream: aux size mismatch")
	// ErrNoAux indicates an aux view on a buffer configured without aux channels.
	ErrNoAux = errors.New("stream: no aux channels configured")
	// ErrNotInitialized indicates a call on a nil Buffer.
	ErrNotInitialized = errors.New("stream: buffer not initialized")
)

// Result describes an accepted write.
type Result struct {
	Samples    int // signal samples stored per channel
	AuxWritten int // aux samples stored per channel
	AuxDropped int // aux samples discarded at the ring boundary
}

// AuxTruncated reports whether part of the aux chunk was discarded.
func (r Result) AuxTruncated() bool { return r.AuxDropped > 0 }

// Stats are cumulative counters since construction.
type Stats struct {
	Writes                 int64
	Samples                int64
	AuxSamples             int64
	AuxTruncations         int64
	InterpolationFallbacks int64
}

// Buffer is a fixed-size acquisition window. It is safe for one writer and
// any number of concurrent readers.
type Buffer struct {
	mu sync.RWMutex

	cfg      Config
	signal   *ring.Ring
	aux      *ring.Ring
	track    *timestamp.Track
	mask     decimate.Mask
	auxMask  decimate.Mask
	maskBits []bool
	auxBits  []bool
	observer Observer

	writes         atomic.Int64
	samples        atomic.Int64
	auxSamples     atomic.Int64
	auxTruncations atomic.Int64
	fallbacks      atomic.Int64
}

// New allocates a window of round(|Seconds| × SampleRate) samples.
func New(opts ...Option) (*Buffer, error) {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	cfg := o.cfg

	capacity := samplesFor(cfg.Seconds, cfg.SampleRate)
	sig, err := ring.New(cfg.Channels, capacity, cfg.Fill)
	if err != nil {
		return nil, fmt.Errorf("stream: signal window: %w", err)
	}
	track, err := timestamp.NewTrack(capacity)
	if err != nil {
		return nil, fmt.Errorf("stream: timestamp track: %w", errors.Join(ErrInvalidCapacity, err))
	}
	if cfg.Density <= 0 {
		cfg.Density = DefaultConfig().Density
	}
	mask, err := decimate.NewMask(capacity, cfg.Density)
	if err != nil {
		return nil, fmt.Errorf("stream: decimation mask: %w", err)
	}

	b := &Buffer{
		cfg:      cfg,
		signal:   sig,
		track:    track,
		mask:     mask,
		maskBits: mask.Bits(),
		observer: o.observer,
	}

	if cfg.AuxChannels > 0 {
		rate := cfg.AuxSampleRate
		if rate <= 0 {
			rate = cfg.SampleRate
		}
		aux, err := ring.New(cfg.AuxChannels, samplesFor(cfg.Seconds, rate), cfg.Fill)
		if err != nil {
			return nil, fmt.Errorf("stream: aux window: %w", err)
		}
		auxMask, err := decimate.NewMask(aux.Capacity(), cfg.Density)
		if err != nil {
			return nil, fmt.Errorf("stream: aux decimation mask: %w", err)
		}
		b.aux = aux
		b.auxMask = auxMask
		b.auxBits = auxMask.Bits()
	}

	if cfg.Boundary {
		b.enableBoundary()
	}
	return b, nil
}

func samplesFor(seconds, rate float64) int {
	n := math.Round(math.Abs(seconds) * rate)
	if n > math.MaxInt32 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// Config returns the configuration the buffer was built with.
func (b *Buffer) Config() Config {
	if b == nil {
		return Config{}
	}
	return b.cfg
}

// Capacity returns the number of signal samples retained per channel.
func (b *Buffer) Capacity() int {
	if b == nil {
		return 0
	}
	return b.signal.Capacity()
}

// AuxCapacity returns the number of aux samples retained per channel, or 0
// without aux.
func (b *Buffer) AuxCapacity() int {
	if b == nil || b.aux == nil {
		return 0
	}
	return b.aux.Capacity()
}

// HasAux reports whether the buffer stores aux channels.
func (b *Buffer) HasAux() bool {
	return b != nil && b.aux != nil
}

// Mask returns the decimation mask of the signal axis.
func (b *Buffer) Mask() decimate.Mask {
	if b == nil {
		return decimate.Mask{}
	}
	return b.mask
}

// EnableBoundary switches signal, aux and timestamps to circular writes.
// It is a no-op when already enabled.
func (b *Buffer) EnableBoundary() error {
	if b == nil {
		return ErrNotInitialized
	}
	b.mu.Lock()
	b.enableBoundary()
	b.mu.Unlock()
	return nil
}

func (b *Buffer) enableBoundary() {
	b.signal.EnableCursor()
	b.track.EnableCursor()
	if b.aux != nil {
		b.aux.EnableCursor()
	}
}

// Write stores one chunk. sig must have one row per signal channel; aux may
// be nil, otherwise it must have one row per aux channel. ts is the wall
// clock time of the chunk's last signal sample in epoch seconds.
//
// Invalid input is rejected before anything is stored. In circular mode an
// aux chunk that does not fit before the end of the aux ring is truncated
// while the aux cursor still advances by the whole chunk; the write succeeds,
// Result reports the dropped samples and the observer receives a
// ConditionAuxSizeMismatch event.
func (b *Buffer) Write(sig, aux [][]float64, ts float64) (Result, error) {
	if b == nil {
		return Result{}, ErrNotInitialized
	}

	n, err := b.signal.Check(sig)
	if err != nil {
		return Result{}, fmt.Errorf("stream: signal chunk: %w", err)
	}
	m := 0
	if aux != nil {
		if b.aux == nil {
			return Result{}, fmt.Errorf("stream: aux chunk: %w: got %d channels, want 0", ErrChannelMismatch, len(aux))
		}
		if m, err = b.aux.Check(aux); err != nil {
			return Result{}, fmt.Errorf("stream: aux chunk: %w", err)
		}
	}
	if !core.IsFinite(ts) {
		return Result{}, fmt.Errorf("stream: %w: %v", ErrInvalidTimestamp, ts)
	}

	res := Result{Samples: n}

	b.mu.Lock()
	if err := b.track.Append(n, ts); err != nil {
		b.mu.Unlock()
		return Result{}, fmt.Errorf("stream: timestamp: %w", err)
	}
	if err := b.signal.Write(sig); err != nil {
		b.mu.Unlock()
		return Result{}, fmt.Errorf("stream: signal chunk: %w", err)
	}
	if m > 0 {
		res.AuxWritten, _ = b.aux.WriteClipped(aux)
		res.AuxDropped = m - res.AuxWritten
	}
	b.mu.Unlock()

	b.writes.Add(1)
	b.samples.Add(int64(n))
	b.auxSamples.Add(int64(res.AuxWritten))
	if res.AuxTruncated() {
		b.auxTruncations.Add(1)
		b.notify(Event{
			Condition: ConditionAuxSizeMismatch,
			Written:   res.AuxWritten,
			Requested: m,
			Err:       fmt.Errorf("%w: wrote %d of %d samples", ErrAuxSizeMismatch, res.AuxWritten, m),
		})
	}
	return res, nil
}

// Reset refills every ring with the fill value and drops all timestamps.
// Write modes are kept.
func (b *Buffer) Reset() error {
	if b == nil {
		return ErrNotInitialized
	}
	b.mu.Lock()
	b.signal.Reset()
	b.track.Reset()
	if b.aux != nil {
		b.aux.Reset()
	}
	b.mu.Unlock()
	return nil
}

// Boundary returns the signal cursor.
func (b *Buffer) Boundary() (ring.Cursor, error) {
	if b == nil {
		return ring.Cursor{}, ErrNotInitialized
	}
	return b.signal.Cursor(), nil
}

// AuxBoundary returns the aux cursor.
func (b *Buffer) AuxBoundary() (ring.Cursor, error) {
	if b == nil {
		return ring.Cursor{}, ErrNotInitialized
	}
	if b.aux == nil {
		return ring.Cursor{}, ErrNoAux
	}
	return b.aux.Cursor(), nil
}

// BoundarySeconds returns the signal cursor position as an offset in
// seconds from column 0, for drawing the write boundary on a time axis.
// ok is false in shift mode.
func (b *Buffer) BoundarySeconds() (seconds float64, ok bool) {
	if b == nil {
		return 0, false
	}
	pos, ok := b.signal.Cursor().Position()
	if !ok {
		return 0, false
	}
	return float64(pos) / b.cfg.SampleRate, true
}

// Stats returns cumulative counters.
func (b *Buffer) Stats() Stats {
	if b == nil {
		return Stats{}
	}
	return Stats{
		Writes:                 b.writes.Load(),
		Samples:                b.samples.Load(),
		AuxSamples:             b.auxSamples.Load(),
		AuxTruncations:         b.auxTruncations.Load(),
		InterpolationFallbacks: b.fallbacks.Load(),
	}
}

func (b *Buffer) notify(e Event) {
	if b.observer != nil {
		b.observer.Observe(e)
	}
}

// timestamps must be called with b.mu held for reading. The returned error
// is non-nil only when reconstruction fell back to raw markers.
func (b *Buffer) timestamps() ([]float64, error) {
	return b.track.Reconstruct()
}

func (b *Buffer) reportFallback(err error) {
	if err == nil {
		return
	}
	b.fallbacks.Add(1)
	b.notify(Event{Condition: ConditionInterpolationUnavailable, Err: err})
}
