package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-bci/dsp/core"
	"github.com/cwbudde/algo-bci/dsp/signal"
)

func ExampleSource_Next() {
	src := signal.NewSource(
		[]core.AcquisitionOption{core.WithSampleRate(1000), core.WithChannels(1), core.WithAuxChannels(0)},
		signal.WithRhythm(250),
		signal.WithAmplitude(1),
		signal.WithNoise(0),
	)
	sig, _, err := src.Next(4)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.0f %.0f %.0f %.0f\n", sig[0][0], sig[0][1], sig[0][2], sig[0][3])
	fmt.Printf("elapsed=%.3fs\n", src.Elapsed())

	// Output:
	// 0 1 0 -1
	// elapsed=0.004s
}
