package stream

import (
	"github.com/cwbudde/algo-bci/dsp/decimate"
)

// Window is a consistent copy of the whole buffer in physical column
// layout. Aux is nil when the buffer has no aux channels.
type Window struct {
	Signal     [][]float64
	Aux        [][]float64
	Timestamps []float64
}

// Window returns signal, aux and reconstructed timestamps taken under one
// read lock. When the timeline cannot be reconstructed, Timestamps holds the
// raw markers and the observer receives ConditionInterpolationUnavailable.
func (b *Buffer) Window() (Window, error) {
	if b == nil {
		return Window{}, ErrNotInitialized
	}

	b.mu.RLock()
	w := Window{Signal: b.signal.Snapshot()}
	if b.aux != nil {
		w.Aux = b.aux.Snapshot()
	}
	ts, terr := b.timestamps()
	b.mu.RUnlock()

	w.Timestamps = ts
	b.reportFallback(terr)
	return w, nil
}

// Signal returns a copy of the signal ring in physical layout.
func (b *Buffer) Signal() ([][]float64, error) {
	if b == nil {
		return nil, ErrNotInitialized
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.signal.Snapshot(), nil
}

// Aux returns a copy of the aux ring in physical layout.
func (b *Buffer) Aux() ([][]float64, error) {
	if b == nil {
		return nil, ErrNotInitialized
	}
	if b.aux == nil {
		return nil, ErrNoAux
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.aux.Snapshot(), nil
}

// Timestamps returns one reconstructed time per signal column.
func (b *Buffer) Timestamps() ([]float64, error) {
	if b == nil {
		return nil, ErrNotInitialized
	}
	b.mu.RLock()
	ts, terr := b.timestamps()
	b.mu.RUnlock()
	b.reportFallback(terr)
	return ts, nil
}

// RawTimestamps returns the sparse chunk markers, zero where no marker exists.
func (b *Buffer) RawTimestamps() ([]float64, error) {
	if b == nil {
		return nil, ErrNotInitialized
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.track.Raw(), nil
}

// Tail returns the n most recent signal samples per channel, oldest first,
// regardless of write mode.
func (b *Buffer) Tail(n int) ([][]float64, error) {
	if b == nil {
		return nil, ErrNotInitialized
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.signal.Tail(n), nil
}

// TimeAxis returns the time in seconds of every signal column. In shift mode
// the newest column is 0 and older columns are negative; in circular mode
// column i is at i/SampleRate.
func (b *Buffer) TimeAxis() ([]float64, error) {
	if b == nil {
		return nil, ErrNotInitialized
	}
	b.mu.RLock()
	circular := b.signal.Cursor().Active()
	b.mu.RUnlock()

	capacity := b.signal.Capacity()
	offset := 0
	if !circular {
		offset = capacity - 1
	}
	axis := make([]float64, capacity)
	for i := range axis {
		axis[i] = float64(i-offset) / b.cfg.SampleRate
	}
	return axis, nil
}

// Resampled returns the decimated projection of b.
func (b *Buffer) Resampled() ResampledView {
	return ResampledView{b: b}
}

// ResampledView projects a Buffer through its decimation masks. It holds no
// data of its own: every accessor reads the buffer's current contents.
type ResampledView struct {
	b *Buffer
}

// Mask returns the signal-axis mask.
func (v ResampledView) Mask() decimate.Mask {
	return v.b.Mask()
}

// AuxMask returns the aux-axis mask, which is empty without aux channels.
func (v ResampledView) AuxMask() decimate.Mask {
	if v.b == nil {
		return decimate.Mask{}
	}
	return v.b.auxMask
}

// Signal returns the selected signal columns.
func (v ResampledView) Signal() ([][]float64, error) {
	if v.b == nil {
		return nil, ErrNotInitialized
	}
	v.b.mu.RLock()
	defer v.b.mu.RUnlock()
	return v.b.signal.Select(v.b.maskBits)
}

// Aux returns the selected aux columns.
func (v ResampledView) Aux() ([][]float64, error) {
	if v.b == nil {
		return nil, ErrNotInitialized
	}
	if v.b.aux == nil {
		return nil, ErrNoAux
	}
	v.b.mu.RLock()
	defer v.b.mu.RUnlock()
	return v.b.aux.Select(v.b.auxBits)
}

// Timestamps returns the reconstructed times of the selected signal columns.
func (v ResampledView) Timestamps() ([]float64, error) {
	ts, err := v.b.Timestamps()
	if err != nil {
		return nil, err
	}
	return v.b.mask.Apply(nil, ts), nil
}

// TimeAxis returns the relative times of the selected signal columns.
func (v ResampledView) TimeAxis() ([]float64, error) {
	axis, err := v.b.TimeAxis()
	if err != nil {
		return nil, err
	}
	return v.b.mask.Apply(nil, axis), nil
}

// Window returns the selected columns of signal, aux and timestamps taken
// under one read lock.
func (v ResampledView) Window() (Window, error) {
	b := v.b
	if b == nil {
		return Window{}, ErrNotInitialized
	}

	b.mu.RLock()
	sig, err := b.signal.Select(b.maskBits)
	if err != nil {
		b.mu.RUnlock()
		return Window{}, err
	}
	w := Window{Signal: sig}
	if b.aux != nil {
		if w.Aux, err = b.aux.Select(b.auxBits); err != nil {
			b.mu.RUnlock()
			return Window{}, err
		}
	}
	ts, terr := b.timestamps()
	b.mu.RUnlock()

	w.Timestamps = b.mask.Apply(nil, ts)
	b.reportFallback(terr)
	return w, nil
}

// BoundarySeconds returns the signal write boundary in seconds; see
// Buffer.BoundarySeconds. The boundary is not decimated.
func (v ResampledView) BoundarySeconds() (float64, bool) {
	return v.b.BoundarySeconds()
}
