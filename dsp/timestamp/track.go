package timestamp

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-bci/dsp/interp"
	"github.com/cwbudde/algo-bci/dsp/ring"
)

var (
	// ErrInvalidCapacity indicates a track with no positions.
	ErrInvalidCapacity = errors.New("timestamp: invalid capacity")
	// ErrOversizeChunk indicates a chunk longer than the track capacity.
	ErrOversizeChunk = errors.New("timestamp: chunk exceeds capacity")
	// ErrInvalidTimestamp indicates a NaN or infinite marker time.
	ErrInvalidTimestamp = errors.New("timestamp: invalid timestamp")
	// ErrInterpolationUnavailable indicates the timeline could not be
	// reconstructed and raw markers were returned instead.
	ErrInterpolationUnavailable = errors.New("timestamp: interpolation unavailable")
)

// Marker is one recorded chunk time.
type Marker struct {
	Index int     // physical column
	Time  float64 // epoch seconds
}

// Track stores sparse per-chunk timestamps for a ring of fixed capacity.
// Unmarked positions hold 0; presence is tracked separately so an epoch
// time of 0 is still a valid marker.
type Track struct {
	mu       sync.RWMutex
	values   []float64
	marked   []bool
	capacity int
	cursor   ring.Cursor
}

// NewTrack returns an empty track in shift mode.
func NewTrack(capacity int) (*Track, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Track{
		values:   make([]float64, capacity),
		marked:   make([]bool, capacity),
		capacity: capacity,
	}, nil
}

// Capacity returns the number of positions.
func (tr *Track) Capacity() int { return tr.capacity }

// Cursor returns a copy of the track's cursor.
func (tr *Track) Cursor() ring.Cursor {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.cursor
}

// EnableCursor switches the track to circular mode.
func (tr *Track) EnableCursor() {
	tr.mu.Lock()
	tr.cursor.Enable()
	tr.mu.Unlock()
}

// Append accounts for a chunk of n samples whose last sample was taken at
// time t. Positions covered by the chunk lose any previous marker and the
// last of them receives t.
func (tr *Track) Append(n int, t float64) error {
	if n > tr.capacity {
		return fmt.Errorf("%w: %d samples, capacity %d", ErrOversizeChunk, n, tr.capacity)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, t)
	}
	if n <= 0 {
		return nil
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	pos, ok := tr.cursor.Position()
	if !ok {
		keep := tr.capacity - n
		copy(tr.values, tr.values[n:])
		copy(tr.marked, tr.marked[n:])
		clear(tr.values[keep:])
		clear(tr.marked[keep:])
		tr.values[tr.capacity-1] = t
		tr.marked[tr.capacity-1] = true
		return nil
	}

	for k := range n {
		i := (pos + k) % tr.capacity
		tr.values[i] = 0
		tr.marked[i] = false
	}
	last := (pos + n - 1) % tr.capacity
	tr.values[last] = t
	tr.marked[last] = true
	tr.cursor.Advance(n, tr.capacity)
	return nil
}

// Reset removes every marker. An active cursor returns to position 0.
func (tr *Track) Reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	clear(tr.values)
	clear(tr.marked)
	tr.cursor.Rewind()
}

// Raw returns a copy of the sparse values in physical layout.
func (tr *Track) Raw() []float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return append([]float64(nil), tr.values...)
}

// Marked returns a copy of the marker bitmap in physical layout.
func (tr *Track) Marked() []bool {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return append([]bool(nil), tr.marked...)
}

// Markers returns the recorded markers oldest first.
func (tr *Track) Markers() []Marker {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	start := tr.start()
	var out []Marker
	for k := range tr.capacity {
		i := (start + k) % tr.capacity
		if tr.marked[i] {
			out = append(out, Marker{Index: i, Time: tr.values[i]})
		}
	}
	return out
}

// Reconstruct returns a dense timeline in physical layout, interpolating
// between markers and extrapolating past the first and last one.
//
// When fewer than two markers exist, or marker times go backwards, the raw
// sparse values are returned together with an error wrapping
// ErrInterpolationUnavailable. The returned slice is valid in both cases.
func (tr *Track) Reconstruct() ([]float64, error) {
	tr.mu.RLock()
	raw := append([]float64(nil), tr.values...)
	start := tr.start()
	values := make([]float64, tr.capacity)
	known := make([]bool, tr.capacity)
	for k := range tr.capacity {
		i := (start + k) % tr.capacity
		values[k] = tr.values[i]
		known[k] = tr.marked[i]
	}
	tr.mu.RUnlock()

	if err := checkMonotonic(values, known); err != nil {
		return raw, fmt.Errorf("%w: %w", ErrInterpolationUnavailable, err)
	}
	if err := interp.FillSparse(values, known); err != nil {
		return raw, fmt.Errorf("%w: %w", ErrInterpolationUnavailable, err)
	}

	out := make([]float64, tr.capacity)
	for k, v := range values {
		out[(start+k)%tr.capacity] = v
	}
	return out, nil
}

// start returns the physical index of the oldest position. Caller holds the lock.
func (tr *Track) start() int {
	if pos, ok := tr.cursor.Position(); ok {
		return pos
	}
	return 0
}

var errNonMonotonic = errors.New("marker times decrease")

func checkMonotonic(values []float64, known []bool) error {
	prev := math.Inf(-1)
	for i, k := range known {
		if !k {
			continue
		}
		if values[i] < prev {
			return fmt.Errorf("%w at position %d", errNonMonotonic, i)
		}
		prev = values[i]
	}
	return nil
}
