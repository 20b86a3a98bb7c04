package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-bci/dsp/analysis"
	"github.com/cwbudde/algo-bci/dsp/core"
	"github.com/cwbudde/algo-bci/dsp/stream"
	"github.com/cwbudde/algo-bci/internal/config"
)

const (
	alphaLo = 8.0
	alphaHi = 13.0
)

func summarize(out io.Writer, buf *stream.Buffer, cfg *config.Config, elapsed float64) error {
	rate := cfg.Acquisition.SampleRate
	n := min(buf.Capacity(), int(math.Round(elapsed*rate)))

	st := buf.Stats()
	cur, err := buf.Boundary()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "recorded %.2fs in %d writes, window %d samples, cursor %v, aux truncations %d, timestamp fallbacks %d\n\n",
		elapsed, st.Writes, n, cur, st.AuxTruncations, st.InterpolationFallbacks); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	tail, err := buf.Tail(n)
	if err != nil {
		return err
	}
	centred := analysis.Centralize(tail, 0)

	alpha := make([]float64, len(tail))
	for i := range alpha {
		alpha[i] = math.NaN()
	}
	if alphaHi <= rate/2 {
		if alpha, err = analysis.BandPowers(centred, rate, alphaLo, alphaHi); err != nil {
			return err
		}
	}
	var tones [][]float64
	rhythm := cfg.Producer.RhythmHz
	if rhythm > 0 && rhythm <= rate/2 {
		if tones, err = analysis.ToneAmplitudes(centred, []float64{rhythm}, rate); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tMean\tRMS\tPeak-Peak\tKurtosis\tAlpha [dB]\tTone %.1f Hz [uV]\n", rhythm); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t----\t---\t---------\t--------\t----------\t------------\n"); err != nil {
		return err
	}
	for ch, st := range analysis.DescribeBlock(tail) {
		tone := math.NaN()
		if tones != nil {
			tone = tones[ch][0]
		}
		if _, err := fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			ch, st.Mean, st.RMS, st.PeakToPeak, st.Kurtosis, core.LinearPowerToDB(alpha[ch]), tone); err != nil {
			return err
		}
	}
	return tw.Flush()
}
