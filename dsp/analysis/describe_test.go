package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-bci/internal/testutil"
)

func TestDescribe(t *testing.T) {
	st := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if st.Samples != 8 || math.Abs(st.Mean-5) > 1e-12 || st.Min != 2 || st.Max != 9 || st.PeakToPeak != 7 {
		t.Fatalf("Describe() = %+v", st)
	}
	if math.Abs(st.StdDev-2) > 1e-12 {
		t.Fatalf("StdDev = %v, want 2", st.StdDev)
	}
	if want := math.Sqrt(232.0 / 8); math.Abs(st.RMS-want) > 1e-12 {
		t.Fatalf("RMS = %v, want %v", st.RMS, want)
	}
}

func TestDescribeSineKurtosis(t *testing.T) {
	st := Describe(testutil.Sine(5, 1000, 1, 1000))
	if math.Abs(st.Kurtosis+1.5) > 1e-6 {
		t.Fatalf("sine excess kurtosis = %v, want -1.5", st.Kurtosis)
	}
	if math.Abs(st.RMS-1/math.Sqrt2) > 1e-9 {
		t.Fatalf("sine RMS = %v", st.RMS)
	}
}

func TestDescribeSkipsNaN(t *testing.T) {
	st := Describe([]float64{math.NaN(), 1, 3, math.NaN()})
	if st.Samples != 2 || st.Mean != 2 {
		t.Fatalf("Describe() = %+v", st)
	}
	if got := Describe([]float64{math.NaN()}); got != (ChannelStats{}) {
		t.Fatalf("Describe(all NaN) = %+v", got)
	}
}

func TestDescribeBlock(t *testing.T) {
	got := DescribeBlock([][]float64{{1, 1}, {0, 2}})
	if len(got) != 2 || got[0].StdDev != 0 || got[0].Kurtosis != 0 || got[1].Mean != 1 {
		t.Fatalf("DescribeBlock() = %+v", got)
	}
}
