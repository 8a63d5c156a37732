// Package band provides FFT-based spectral power measurement and a
// brick-wall bandpass filter.
//
// Both operations zero-pad their input to a fixed power-of-two FFT size and
// share the same bin-index-from-frequency mapping, mirroring the zero-pad /
// forward-FFT / manipulate-bins / inverse-FFT shape the teacher uses in
// measure/sweep's InverseFilter and Deconvolve.
package band

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/Aryan181/acoustic-ranging/dsp/core"
	"github.com/Aryan181/acoustic-ranging/dsp/spectrum"
)

// Epsilon floors band-power results so that log10 never sees zero or a
// negative argument.
const Epsilon = 1e-20

// Errors returned by this package.
var (
	ErrEmptyInput        = errors.New("band: empty input")
	ErrInvalidFFTSize    = errors.New("band: fft size must be a positive power of two")
	ErrInvalidSampleRate = errors.New("band: sample rate must be positive")
)

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// zeroPaddedComplexInput builds the complex FFT input buffer for x:
// a real scratch buffer of length fftSize is sized and cleared with
// dsp/core's buffer-reuse helpers (EnsureLen, Zero), x is copied into it
// with CopyInto (which truncates automatically if x is longer than
// fftSize), and the result is widened to complex128 for the FFT plan.
func zeroPaddedComplexInput(x []float64, fftSize int) []complex128 {
	var buf []float64
	buf = core.EnsureLen(buf, fftSize)
	core.Zero(buf)
	core.CopyInto(buf, x)

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}
	return in
}

// PowerSpectrum returns the first fftSize/2 bins of |X[k]|^2 / fftSize^2 for
// the real input x, zero-padded (or truncated) to fftSize.
func PowerSpectrum(x []float64, fftSize int, sampleRate float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if !isPowerOfTwo(fftSize) {
		return nil, ErrInvalidFFTSize
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("band: failed to create FFT plan: %w", err)
	}

	in := zeroPaddedComplexInput(x, fftSize)

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("band: forward FFT failed: %w", err)
	}

	power := spectrum.Power(out)
	nf := float64(fftSize)
	half := fftSize / 2
	mag2 := make([]float64, half)
	for k := 0; k < half; k++ {
		mag2[k] = power[k] / (nf * nf)
	}
	return mag2, nil
}

// binRange converts an inclusive [loHz, hiHz] frequency band into the
// inclusive bin-index range ceil(loHz*N/fs) .. floor(hiHz*N/fs).
func binRange(loHz, hiHz float64, fftSize int, sampleRate float64) (lo, hi int) {
	lo = int(math.Ceil(loHz * float64(fftSize) / sampleRate))
	hi = int(math.Floor(hiHz * float64(fftSize) / sampleRate))
	return lo, hi
}

// Power returns the mean value of a magnitude-squared spectrum over the
// inclusive bin range covering [loHz, hiHz]. Returns Epsilon if the band is
// empty (e.g. resolves to zero bins, or falls entirely outside spectrum).
func Power(spectrumMagSq []float64, loHz, hiHz float64, fftSize int, sampleRate float64) float64 {
	lo, hi := binRange(loHz, hiHz, fftSize, sampleRate)
	if lo < 0 {
		lo = 0
	}
	if hi > len(spectrumMagSq)-1 {
		hi = len(spectrumMagSq) - 1
	}
	if lo > hi {
		return Epsilon
	}

	var sum float64
	count := 0
	for k := lo; k <= hi; k++ {
		sum += spectrumMagSq[k]
		count++
	}
	if count == 0 {
		return Epsilon
	}
	mean := sum / float64(count)
	if mean < Epsilon {
		return Epsilon
	}
	return mean
}

// Bandpass applies a phase-preserving brick-wall bandpass filter to x: a
// forward FFT of the zero-padded input has every bin outside
// [floor(loHz*N/fs), ceil(hiHz*N/fs)] zeroed (including DC and Nyquist),
// then an inverse FFT recovers a real signal truncated back to len(x).
func Bandpass(x []float64, loHz, hiHz float64, fftSize int, sampleRate float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if !isPowerOfTwo(fftSize) {
		return nil, ErrInvalidFFTSize
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("band: failed to create FFT plan: %w", err)
	}

	in := zeroPaddedComplexInput(x, fftSize)

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, in); err != nil {
		return nil, fmt.Errorf("band: forward FFT failed: %w", err)
	}

	keepLo := int(math.Floor(loHz * float64(fftSize) / sampleRate))
	keepHi := int(math.Ceil(hiHz * float64(fftSize) / sampleRate))

	for k := range freq {
		// Mirror bin for real-signal symmetry: bin k and bin N-k must be
		// zeroed together so the inverse transform stays real-valued.
		mirror := k
		if k != 0 {
			mirror = fftSize - k
		}
		inKeep := k >= keepLo && k <= keepHi
		mirrorKeep := mirror >= keepLo && mirror <= keepHi
		if k == 0 || k == fftSize/2 || !(inKeep || mirrorKeep) {
			freq[k] = 0
		}
	}

	timeDomain := make([]complex128, fftSize)
	if err := plan.Inverse(timeDomain, freq); err != nil {
		return nil, fmt.Errorf("band: inverse FFT failed: %w", err)
	}

	out := make([]float64, len(x))
	for i := range out {
		out[i] = real(timeDomain[i])
	}
	return out, nil
}
