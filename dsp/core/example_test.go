package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-bci/dsp/core"
)

func ExampleApplyAcquisitionOptions() {
	cfg := core.ApplyAcquisitionOptions(
		core.WithSampleRate(500),
		core.WithChannels(16),
	)

	fmt.Printf("sampleRate=%.0f channels=%d aux=%d\n", cfg.SampleRate, cfg.Channels, cfg.AuxChannels)

	// Output:
	// sampleRate=500 channels=16 aux=3
}

func ExampleNewBlock() {
	b := core.NewBlock(2, 3, 0.5)
	b[1][2] = 1
	ch, n, ok := core.BlockShape(b)

	fmt.Println(b)
	fmt.Println(ch, n, ok)

	// Output:
	// [[0.5 0.5 0.5] [0.5 0.5 1]]
	// 2 3 true
}
