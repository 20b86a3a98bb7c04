package ring

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-bci/dsp/core"
)

var (
	// ErrInvalidCapacity indicates a ring with no channels or no samples.
	ErrInvalidCapacity = errors.New("ring: invalid capacity")
	// ErrChannelMismatch indicates a chunk whose channel layout does not match the ring.
	ErrChannelMismatch = errors.New("ring: channel mismatch")
	// ErrOversizeChunk indicates a chunk longer than the ring capacity.
	ErrOversizeChunk = errors.New("ring: chunk exceeds capacity")
	// ErrMaskLength indicates a selection mask not sized to the ring capacity.
	ErrMaskLength = errors.New("ring: mask length mismatch")
)

// Ring is a channels × capacity sample store with shift or circular
// overwrite. It is safe for one writer and any number of readers.
type Ring struct {
	mu       sync.RWMutex
	rows     [][]float64
	channels int
	capacity int
	fill     float64
	cursor   Cursor
}

// New allocates a ring of channels × capacity samples set to fill.
// The ring starts in shift mode.
func New(channels, capacity int, fill float64) (*Ring, error) {
	if channels <= 0 || capacity <= 0 {
		return nil, fmt.Errorf("%w: %d channels × %d samples", ErrInvalidCapacity, channels, capacity)
	}
	return &Ring{
		rows:     core.NewBlock(channels, capacity, fill),
		channels: channels,
		capacity: capacity,
		fill:     fill,
	}, nil
}

// Channels returns the channel count.
func (r *Ring) Channels() int { return r.channels }

// Capacity returns the number of time samples retained per channel.
func (r *Ring) Capacity() int { return r.capacity }

// Fill returns the value unwritten cells were initialized with.
func (r *Ring) Fill() float64 { return r.fill }

// Cursor returns a copy of the current cursor.
func (r *Ring) Cursor() Cursor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cursor
}

// EnableCursor switches the ring to circular mode with the cursor at 0.
// Calling it on a ring already in circular mode does nothing.
func (r *Ring) EnableCursor() {
	r.mu.Lock()
	r.cursor.Enable()
	r.mu.Unlock()
}

// Write stores chunk, which must hold one row per channel, all of equal
// length no greater than the capacity. Rejected chunks leave the ring
// unchanged. An empty chunk is a no-op.
func (r *Ring) Write(chunk [][]float64) error {
	n, err := r.Check(chunk)
	if err != nil || n == 0 {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.cursor.Active() {
		r.shiftIn(chunk, n)
		return nil
	}

	pos := r.cursor.pos
	head := min(n, r.capacity-pos)
	for ch, row := range r.rows {
		src := chunk[ch]
		copy(row[pos:pos+head], src[:head])
		copy(row[:n-head], src[head:n])
	}
	r.cursor.Advance(n, r.capacity)
	return nil
}

// WriteClipped behaves like Write except that in circular mode it never
// wraps: only the columns between the cursor and the end of the ring are
// written. The cursor still advances by the full chunk length, so it stays
// in step with rings fed the same chunk sizes. It returns the number of
// samples stored per channel. In shift mode the whole chunk is stored.
func (r *Ring) WriteClipped(chunk [][]float64) (int, error) {
	n, err := r.Check(chunk)
	if err != nil || n == 0 {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.cursor.Active() {
		r.shiftIn(chunk, n)
		return n, nil
	}

	pos := r.cursor.pos
	head := min(n, r.capacity-pos)
	for ch, row := range r.rows {
		copy(row[pos:pos+head], chunk[ch][:head])
	}
	r.cursor.Advance(n, r.capacity)
	return head, nil
}

// Reset refills every cell with the fill value. An active cursor returns to
// position 0 and stays active.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		core.Fill(row, r.fill)
	}
	r.cursor.Rewind()
}

// Snapshot returns a copy of the ring in its physical column layout.
func (r *Ring) Snapshot() [][]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return core.CopyBlock(r.rows)
}

// Ordered returns a copy of the ring in chronological order, oldest column
// first. In shift mode this equals Snapshot.
func (r *Ring) Ordered() [][]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.cursor.Position()
	if !ok || pos == 0 {
		return core.CopyBlock(r.rows)
	}

	out := core.NewBlock(r.channels, r.capacity, 0)
	for ch, row := range r.rows {
		n := copy(out[ch], row[pos:])
		copy(out[ch][n:], row[:pos])
	}
	return out
}

// Tail returns the n most recently written columns in chronological order.
// n is clamped to [0, capacity].
func (r *Ring) Tail(n int) [][]float64 {
	n = max(0, min(n, r.capacity))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := core.NewBlock(r.channels, n, 0)
	end := r.capacity
	if pos, ok := r.cursor.Position(); ok {
		end = pos
	}
	start := end - n
	for ch, row := range r.rows {
		if start >= 0 {
			copy(out[ch], row[start:end])
			continue
		}
		k := copy(out[ch], row[r.capacity+start:])
		copy(out[ch][k:], row[:end])
	}
	return out
}

// Select returns a copy of the columns whose mask entry is set, in physical
// order. The mask must have one entry per column.
func (r *Ring) Select(mask []bool) ([][]float64, error) {
	if len(mask) != r.capacity {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMaskLength, len(mask), r.capacity)
	}

	count := 0
	for _, set := range mask {
		if set {
			count++
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := core.NewBlock(r.channels, count, 0)
	for ch, row := range r.rows {
		dst := out[ch]
		j := 0
		for i, set := range mask {
			if set {
				dst[j] = row[i]
				j++
			}
		}
	}
	return out, nil
}

// Column returns a copy of column i across all channels.
func (r *Ring) Column(i int) ([]float64, bool) {
	if i < 0 || i >= r.capacity {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	col := make([]float64, r.channels)
	for ch, row := range r.rows {
		col[ch] = row[i]
	}
	return col, true
}

// Check validates chunk against the ring layout without writing it and
// returns its sample count.
func (r *Ring) Check(chunk [][]float64) (int, error) {
	channels, n, ok := core.BlockShape(chunk)
	if channels != r.channels {
		return 0, fmt.Errorf("%w: got %d channels, want %d", ErrChannelMismatch, channels, r.channels)
	}
	if !ok {
		return 0, fmt.Errorf("%w: rows of unequal length", ErrChannelMismatch)
	}
	if n > r.capacity {
		return 0, fmt.Errorf("%w: %d samples, capacity %d", ErrOversizeChunk, n, r.capacity)
	}
	return n, nil
}

// shiftIn must be called with the write lock held.
func (r *Ring) shiftIn(chunk [][]float64, n int) {
	keep := r.capacity - n
	for ch, row := range r.rows {
		copy(row, row[n:])
		copy(row[keep:], chunk[ch][:n])
	}
}
