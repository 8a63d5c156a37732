package xcorr

import (
	"math"
	"testing"

	"github.com/Aryan181/acoustic-ranging/internal/testutil"
)

func TestCorrelateOutputLength(t *testing.T) {
	s := testutil.DeterministicNoise(1, 1, 1000)
	r := testutil.DeterministicNoise(2, 1, 200)
	out, err := Correlate(s, r)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	want := len(s) - len(r) + 1
	if len(out) != want {
		t.Fatalf("length = %d, want %d", len(out), want)
	}
}

func TestCorrelateFindsExactMatch(t *testing.T) {
	ref := testutil.DeterministicSine(18000, 48000, 1, 200)
	signal := make([]float64, 2000)
	copy(signal[733:933], ref)

	out, err := Correlate(signal, ref)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	peak, _ := FindPeak(out, 0)
	if peak != 733 {
		t.Fatalf("peak = %d, want 733", peak)
	}
}

func TestCorrelateNotReversalSensitive(t *testing.T) {
	// A chirp correlated with itself (un-reversed) peaks at the match
	// location; this is the correlation-not-convolution contract this
	// package exists to guarantee.
	ref := testutil.DeterministicSine(18000, 48000, 1, 100)
	signal := make([]float64, 500)
	copy(signal[200:300], ref)

	out, err := Correlate(signal, ref)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	peak, val := FindPeak(out, 0)
	if peak != 200 {
		t.Fatalf("peak = %d, want 200", peak)
	}
	if val <= 0 {
		t.Fatalf("peak value = %v, want > 0", val)
	}
}

func TestCorrelateRejectsBadInput(t *testing.T) {
	if _, err := Correlate(nil, []float64{1}); err == nil {
		t.Error("expected error for empty signal")
	}
	if _, err := Correlate([]float64{1}, nil); err == nil {
		t.Error("expected error for empty reference")
	}
	if _, err := Correlate([]float64{1, 2}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error when reference longer than signal")
	}
}

func TestFindPeakOutOfRangeStart(t *testing.T) {
	idx, val := FindPeak([]float64{1, 2, 3}, 10)
	if idx != 0 || val != 0 {
		t.Fatalf("got (%d, %v), want (0, 0)", idx, val)
	}
}

func TestWidth3dBOnGaussian(t *testing.T) {
	n := 201
	center := 100
	sigma := 10.0
	a := make([]float64, n)
	for i := range a {
		d := float64(i - center)
		a[i] = math.Exp(-0.5 * d * d / (sigma * sigma))
	}
	width := Width3dB(a, center)
	// |a| >= 1/sqrt(2) for |d| <= sigma*sqrt(ln(2)), so the -3dB width of
	// this Gaussian is 2*sigma*sqrt(ln(2)) ~ 1.665*sigma.
	expected := int(2 * sigma * math.Sqrt(math.Ln2))
	if math.Abs(float64(width-expected)) > 3 {
		t.Fatalf("width = %d, want ~%d", width, expected)
	}
}

func TestWidth3dBOutOfRange(t *testing.T) {
	if w := Width3dB(nil, 0); w != 0 {
		t.Fatalf("width = %d, want 0", w)
	}
	if w := Width3dB([]float64{1, 2, 3}, 5); w != 0 {
		t.Fatalf("width = %d, want 0", w)
	}
}

func TestMedianAbs(t *testing.T) {
	if m := MedianAbs([]float64{-1, -5, 3}); m != 3 {
		t.Fatalf("median = %v, want 3", m)
	}
	if m := MedianAbs([]float64{-1, -5, 3, 4}); m != 3.5 {
		t.Fatalf("median = %v, want 3.5", m)
	}
	if m := MedianAbs(nil); m != 0 {
		t.Fatalf("median = %v, want 0", m)
	}
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024}
	for n, want := range cases {
		if got := nextPowerOf2(n); got != want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", n, got, want)
		}
	}
}
