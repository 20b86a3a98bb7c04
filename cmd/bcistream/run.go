package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cwbudde/algo-bci/dsp/signal"
	"github.com/cwbudde/algo-bci/dsp/stream"
	"github.com/cwbudde/algo-bci/internal/config"
	"github.com/cwbudde/algo-bci/internal/metrics"
	"github.com/cwbudde/algo-bci/internal/publish"
)

// run streams the simulated producer into a fresh buffer until the
// configured duration elapses or ctx is done, then writes the summary to out.
// When a metrics or publish address is configured the servers keep running
// after the producer stops, until ctx is done.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	session := uuid.NewString()
	logger = logger.With(slog.String("session", session))

	reg := prometheus.NewRegistry()
	rec := metrics.New()
	if err := rec.Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	reg.MustRegister(collectors.NewGoCollector())

	opts := append(cfg.StreamOptions(),
		stream.WithObserver(stream.Observers(stream.LogObserver(logger), rec)))
	buf, err := stream.New(opts...)
	if err != nil {
		return fmt.Errorf("create buffer: %w", err)
	}
	logger.Info("buffer ready",
		slog.Int("capacity", buf.Capacity()),
		slog.Int("aux_capacity", buf.AuxCapacity()),
		slog.Int("resampled", buf.Mask().Count()),
		slog.Bool("boundary", cfg.Buffer.Boundary))

	var servers []*http.Server
	if cfg.Metrics.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv, err := serve(ctx, cfg.Metrics.Listen, mux, logger)
		if err != nil {
			return err
		}
		servers = append(servers, srv)
	}
	if cfg.Publish.Listen != "" {
		hub := publish.NewHub(buf.Resampled(),
			publish.WithSession(session),
			publish.WithLogger(logger),
			publish.WithClientCount(rec.SetClients))
		go hub.Run(ctx)
		go hub.Publish(ctx, cfg.Publish.Interval)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.HandleWebSocket)
		srv, err := serve(ctx, cfg.Publish.Listen, mux, logger)
		if err != nil {
			return err
		}
		servers = append(servers, srv)
	}
	defer func() {
		for _, srv := range servers {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = srv.Shutdown(shutdownCtx)
			cancel()
		}
	}()

	p := newProducer(cfg, cfg.NewSource())
	if err := p.stream(ctx, buf, rec); err != nil && ctx.Err() == nil {
		return err
	}

	if err := summarize(out, buf, cfg, p.src.Elapsed()); err != nil {
		return err
	}

	if len(servers) > 0 && ctx.Err() == nil {
		logger.Info("producer finished, serving until interrupted")
		<-ctx.Done()
	}
	return nil
}

func serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()
	logger.Info("listening", slog.String("addr", ln.Addr().String()))
	return srv, nil
}

// producer feeds chunks of a signal.Source into a buffer, thinning the aux
// stream when it runs at a lower rate than the signal.
type producer struct {
	src      *signal.Source
	chunk    int
	rate     float64
	auxRatio float64
	auxDue   float64
	duration time.Duration
	realtime bool
	start    float64
}

func newProducer(cfg *config.Config, src *signal.Source) *producer {
	ratio := 1.0
	if r := cfg.Acquisition.AuxSampleRate; r > 0 {
		ratio = r / cfg.Acquisition.SampleRate
	}
	return &producer{
		src:      src,
		chunk:    cfg.Producer.ChunkSize,
		rate:     cfg.Acquisition.SampleRate,
		auxRatio: ratio,
		duration: cfg.Producer.Duration,
		realtime: cfg.Producer.Realtime,
		start:    float64(time.Now().UnixNano()) / 1e9,
	}
}

func (p *producer) stream(ctx context.Context, buf *stream.Buffer, rec *metrics.Recorder) error {
	total := int64(-1)
	if p.duration > 0 {
		total = int64(math.Round(p.duration.Seconds() * p.rate))
	}

	var tick <-chan time.Time
	if p.realtime {
		ticker := time.NewTicker(time.Duration(float64(p.chunk) / p.rate * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	var written int64
	for total < 0 || written < total {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		n := p.chunk
		if total >= 0 {
			n = int(min(int64(n), total-written))
		}
		sig, aux, err := p.src.Next(n)
		if err != nil {
			return err
		}
		ts := p.start + p.src.Elapsed() - 1/p.rate

		res, err := buf.Write(sig, p.thinAux(aux, n), ts)
		if err != nil {
			return fmt.Errorf("write chunk: %w", err)
		}
		rec.ObserveWrite(res)
		if c, err := buf.Boundary(); err == nil {
			rec.ObserveBoundary("signal", c)
		}
		if c, err := buf.AuxBoundary(); err == nil {
			rec.ObserveBoundary("aux", c)
		}
		written += int64(n)
	}
	return nil
}

// thinAux keeps evenly spaced aux columns so that the aux stream advances at
// auxRatio times the signal rate.
func (p *producer) thinAux(aux [][]float64, n int) [][]float64 {
	if aux == nil || p.auxRatio >= 1 {
		return aux
	}
	p.auxDue += float64(n) * p.auxRatio
	m := int(p.auxDue)
	p.auxDue -= float64(m)

	out := make([][]float64, len(aux))
	for ch, row := range aux {
		out[ch] = make([]float64, m)
		for i := range m {
			out[ch][i] = row[i*n/m]
		}
	}
	return out
}
