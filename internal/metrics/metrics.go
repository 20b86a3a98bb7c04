// Package metrics exports stream buffer activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cwbudde/algo-bci/dsp/ring"
	"github.com/cwbudde/algo-bci/dsp/stream"
)

// Recorder holds the collectors fed by a stream buffer. It implements
// stream.Observer so it can be passed to stream.WithObserver directly.
type Recorder struct {
	writes     prometheus.Counter
	samples    *prometheus.CounterVec
	auxDropped prometheus.Counter
	events     *prometheus.CounterVec
	chunkSize  prometheus.Histogram
	cursor     *prometheus.GaugeVec
	clients    prometheus.Gauge
}

// New creates a Recorder. Nothing is registered until Register is called.
func New() *Recorder {
	return &Recorder{
		writes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bci_stream_writes_total",
				Help: "Total number of accepted chunk writes",
			},
		),

		samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bci_stream_samples_total",
				Help: "Total number of samples stored per channel",
			},
			[]string{"stream"},
		),

		auxDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bci_stream_aux_dropped_samples_total",
				Help: "Aux samples discarded at the ring boundary",
			},
		),

		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bci_stream_events_total",
				Help: "Non-fatal buffer conditions",
			},
			[]string{"condition"},
		),

		chunkSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bci_stream_chunk_samples",
				Help:    "Signal samples per written chunk",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),

		cursor: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bci_stream_cursor_position",
				Help: "Circular write position, -1 in shift mode",
			},
			[]string{"stream"},
		),

		clients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "bci_publish_clients",
				Help: "Number of connected view subscribers",
			},
		),
	}
}

// Register adds every collector to reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		r.writes, r.samples, r.auxDropped, r.events, r.chunkSize, r.cursor, r.clients,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Observe counts a non-fatal buffer event.
func (r *Recorder) Observe(e stream.Event) {
	r.events.WithLabelValues(e.Condition.String()).Inc()
}

// ObserveWrite records an accepted write.
func (r *Recorder) ObserveWrite(res stream.Result) {
	r.writes.Inc()
	r.chunkSize.Observe(float64(res.Samples))
	r.samples.WithLabelValues("signal").Add(float64(res.Samples))
	r.samples.WithLabelValues("aux").Add(float64(res.AuxWritten))
	r.auxDropped.Add(float64(res.AuxDropped))
}

// ObserveBoundary publishes the cursor of the named stream.
func (r *Recorder) ObserveBoundary(name string, c ring.Cursor) {
	pos, ok := c.Position()
	if !ok {
		pos = -1
	}
	r.cursor.WithLabelValues(name).Set(float64(pos))
}

// SetClients updates the subscriber gauge.
func (r *Recorder) SetClients(n int) {
	r.clients.Set(float64(n))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
