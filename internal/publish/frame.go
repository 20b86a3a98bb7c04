package publish

import (
	"github.com/cwbudde/algo-bci/dsp/stream"
)

// View is the read side a Hub publishes. stream.ResampledView satisfies it.
type View interface {
	Window() (stream.Window, error)
	TimeAxis() ([]float64, error)
	BoundarySeconds() (float64, bool)
}

// Frame is one published snapshot of a View.
type Frame struct {
	Type       string      `json:"type"`
	Session    string      `json:"session"`
	Seq        uint64      `json:"seq"`
	Boundary   *float64    `json:"boundary,omitempty"`
	Time       []float64   `json:"time"`
	Timestamps []float64   `json:"timestamps"`
	Signal     [][]float64 `json:"signal"`
	Aux        [][]float64 `json:"aux,omitempty"`
}

// BuildFrame snapshots v.
func BuildFrame(v View, session string, seq uint64) (Frame, error) {
	w, err := v.Window()
	if err != nil {
		return Frame{}, err
	}
	axis, err := v.TimeAxis()
	if err != nil {
		return Frame{}, err
	}

	f := Frame{
		Type:       "frame",
		Session:    session,
		Seq:        seq,
		Time:       axis,
		Timestamps: w.Timestamps,
		Signal:     w.Signal,
		Aux:        w.Aux,
	}
	if s, ok := v.BoundarySeconds(); ok {
		f.Boundary = &s
	}
	return f, nil
}
