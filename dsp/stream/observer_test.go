package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestConditionString(t *testing.T) {
	tests := []struct {
		c    Condition
		want string
	}{
		{ConditionAuxSizeMismatch, "aux_size_mismatch"},
		{ConditionInterpolationUnavailable, "interpolation_unavailable"},
		{Condition(0), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.c.String(); got != tc.want {
			t.Fatalf("Condition(%d).String() = %q, want %q", tc.c, got, tc.want)
		}
	}
}

func TestObserversFanOut(t *testing.T) {
	var a, b []Condition
	obs := Observers(
		ObserverFunc(func(e Event) { a = append(a, e.Condition) }),
		nil,
		ObserverFunc(func(e Event) { b = append(b, e.Condition) }),
	)
	obs.Observe(Event{Condition: ConditionAuxSizeMismatch})
	obs.Observe(Event{Condition: ConditionInterpolationUnavailable})
	if len(a) != 2 || len(b) != 2 || a[1] != ConditionInterpolationUnavailable {
		t.Fatalf("fan-out received %v and %v", a, b)
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	LogObserver(logger).Observe(Event{
		Condition: ConditionAuxSizeMismatch,
		Written:   2,
		Requested: 5,
		Err:       ErrAuxSizeMismatch,
	})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output %q is not JSON: %v", buf.String(), err)
	}
	if rec["level"] != "WARN" || rec["condition"] != "aux_size_mismatch" {
		t.Fatalf("record = %v", rec)
	}
	if rec["written"] != float64(2) || rec["requested"] != float64(5) {
		t.Fatalf("record counts = %v/%v", rec["written"], rec["requested"])
	}

	buf.Reset()
	LogObserver(logger).Observe(Event{
		Condition: ConditionInterpolationUnavailable,
		Err:       errors.New("boom"),
	})
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output %q is not JSON: %v", buf.String(), err)
	}
	if rec["condition"] != "interpolation_unavailable" || rec["error"] != "boom" {
		t.Fatalf("record = %v", rec)
	}
}

func TestBufferLogsThroughObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	b := mustNew(t, WithSeconds(1), WithSampleRate(10), WithChannels(1), WithAuxChannels(0), WithObserver(LogObserver(logger)))
	if _, err := b.Timestamps(); err != nil {
		t.Fatalf("Timestamps() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("condition=interpolation_unavailable")) {
		t.Fatalf("log output = %q", buf.String())
	}
}
