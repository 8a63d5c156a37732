package band

import (
	"math"
	"testing"

	"github.com/Aryan181/acoustic-ranging/internal/testutil"
)

const sampleRate = 48000.0
const fftSize = 4096

func TestPowerSpectrumTonePeaksInBand(t *testing.T) {
	tone := testutil.DeterministicSine(18000, sampleRate, 1, 4096)
	spec, err := PowerSpectrum(tone, fftSize, sampleRate)
	if err != nil {
		t.Fatalf("PowerSpectrum: %v", err)
	}
	inBand := Power(spec, 16000, 20000, fftSize, sampleRate)
	outOfBand := Power(spec, 0, 8000, fftSize, sampleRate)
	if inBand <= outOfBand {
		t.Fatalf("expected in-band power (%v) > out-of-band power (%v)", inBand, outOfBand)
	}
}

func TestPowerSpectrumRejectsBadInput(t *testing.T) {
	if _, err := PowerSpectrum(nil, fftSize, sampleRate); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := PowerSpectrum([]float64{1, 2, 3}, 100, sampleRate); err == nil {
		t.Error("expected error for non-power-of-two fft size")
	}
	if _, err := PowerSpectrum([]float64{1, 2, 3}, fftSize, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestPowerEmptyBandReturnsEpsilon(t *testing.T) {
	spec := make([]float64, 100)
	if got := Power(spec, 100000, 200000, fftSize, sampleRate); got != Epsilon {
		t.Fatalf("Power = %v, want Epsilon", got)
	}
}

func TestBandpassPreservesLength(t *testing.T) {
	x := testutil.DeterministicSine(18000, sampleRate, 1, 3000)
	out, err := Bandpass(x, 16000, 20000, fftSize, sampleRate)
	if err != nil {
		t.Fatalf("Bandpass: %v", err)
	}
	if len(out) != len(x) {
		t.Fatalf("length = %d, want %d", len(out), len(x))
	}
	testutil.RequireFinite(t, out)
}

func TestBandpassPassesInBandTone(t *testing.T) {
	x := testutil.DeterministicSine(18000, sampleRate, 1, 4096)
	out, err := Bandpass(x, 16000, 20000, fftSize, sampleRate)
	if err != nil {
		t.Fatalf("Bandpass: %v", err)
	}

	var energyIn, energyOut float64
	for i := range x {
		energyIn += x[i] * x[i]
		energyOut += out[i] * out[i]
	}
	ratio := energyOut / energyIn
	if ratio < 0.5 {
		t.Fatalf("in-band tone attenuated too much: energy ratio %v", ratio)
	}
}

func TestBandpassRejectsOutOfBandTone(t *testing.T) {
	x := testutil.DeterministicSine(1000, sampleRate, 1, 4096)
	out, err := Bandpass(x, 16000, 20000, fftSize, sampleRate)
	if err != nil {
		t.Fatalf("Bandpass: %v", err)
	}

	var energyIn, energyOut float64
	for i := range x {
		energyIn += x[i] * x[i]
		energyOut += out[i] * out[i]
	}
	ratio := energyOut / energyIn
	if ratio > 0.05 {
		t.Fatalf("out-of-band tone not attenuated: energy ratio %v", ratio)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	cases := map[int]bool{0: false, 1: true, 2: true, 3: false, 4096: true, 4095: false}
	for n, want := range cases {
		if got := isPowerOfTwo(n); got != want {
			t.Errorf("isPowerOfTwo(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestBinRangeMonotonic(t *testing.T) {
	lo, hi := binRange(16000, 20000, fftSize, sampleRate)
	if lo > hi {
		t.Fatalf("lo (%d) > hi (%d)", lo, hi)
	}
	loExpect := int(math.Ceil(16000 * fftSize / sampleRate))
	if lo != loExpect {
		t.Fatalf("lo = %d, want %d", lo, loExpect)
	}
}
