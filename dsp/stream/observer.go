package stream

import (
	"context"
	"log/slog"
)

// Condition identifies a non-fatal event.
type Condition int

const (
	// ConditionAuxSizeMismatch reports an aux chunk truncated at the ring boundary.
	ConditionAuxSizeMismatch Condition = iota + 1
	// ConditionInterpolationUnavailable reports a view that fell back to raw timestamps.
	ConditionInterpolationUnavailable
)

// String returns the condition name.
func (c Condition) String() string {
	switch c {
	case ConditionAuxSizeMismatch:
		return "aux_size_mismatch"
	case ConditionInterpolationUnavailable:
		return "interpolation_unavailable"
	default:
		return "unknown"
	}
}

// Event describes one non-fatal condition.
type Event struct {
	Condition Condition
	// Written and Requested are aux sample counts for ConditionAuxSizeMismatch.
	Written   int
	Requested int
	Err       error
}

// Observer receives non-fatal events. Observe is called without any buffer
// lock held, from the goroutine that triggered the event.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Observers fans events out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	list := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return ObserverFunc(func(e Event) {
		for _, o := range list {
			o.Observe(e)
		}
	})
}

// LogObserver logs every event at warning level. A nil logger uses slog.Default.
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return ObserverFunc(func(e Event) {
		attrs := []slog.Attr{slog.String("condition", e.Condition.String())}
		switch e.Condition {
		case ConditionAuxSizeMismatch:
			attrs = append(attrs,
				slog.Int("written", e.Written),
				slog.Int("requested", e.Requested))
			logger.LogAttrs(context.Background(), slog.LevelWarn, "stream: aux chunk truncated", attrs...)
		default:
			if e.Err != nil {
				attrs = append(attrs, slog.String("error", e.Err.Error()))
			}
			logger.LogAttrs(context.Background(), slog.LevelWarn, "stream: timestamp interpolation unavailable", attrs...)
		}
	})
}
