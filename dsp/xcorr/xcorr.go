// Package xcorr implements valid-mode cross-correlation and the scalar
// measurements taken from its output: peak location, -3 dB width, and a
// robust noise-floor estimate.
//
// Cross-correlation here is the sliding dot product, not convolution: the
// reference is never time-reversed. The teacher's dsp/conv.Correlate
// reduces to convolution against a reversed reference, which is the wrong
// primitive for matched filtering against a chirp replica — reversing the
// reference shifts the peak location, as spec.md's design notes call out
// explicitly. This package implements the matching index definition
// directly instead of reusing that reversal.
package xcorr

import (
	"errors"
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by this package.
var (
	ErrEmptyInput      = errors.New("xcorr: empty input")
	ErrReferenceLonger = errors.New("xcorr: reference longer than signal")
)

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Correlate computes valid-mode cross-correlation of signal s (length S)
// against reference r (length R), S >= R:
//
//	c[n] = sum_{k=0}^{R-1} s[n+k] * r[k],  n = 0 .. S-R
//
// The output has length S-R+1. It is always computed via FFT (zero-pad both
// operands to the power of two >= S, multiply the signal spectrum by the
// conjugate spectrum of the un-reversed, zero-padded reference, inverse
// transform), which is algebraically equivalent to the direct sliding dot
// product but O(N log N).
func Correlate(s, r []float64) ([]float64, error) {
	if len(s) == 0 || len(r) == 0 {
		return nil, ErrEmptyInput
	}
	if len(r) > len(s) {
		return nil, ErrReferenceLonger
	}

	outLen := len(s) - len(r) + 1

	fftSize := nextPowerOf2(len(s))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("xcorr: failed to create FFT plan: %w", err)
	}

	sFreq := make([]complex128, fftSize)
	sIn := make([]complex128, fftSize)
	for i, v := range s {
		sIn[i] = complex(v, 0)
	}
	if err := plan.Forward(sFreq, sIn); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}

	rIn := make([]complex128, fftSize)
	for i, v := range r {
		rIn[i] = complex(v, 0)
	}
	rFreq := make([]complex128, fftSize)
	if err := plan.Forward(rFreq, rIn); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}

	prod := make([]complex128, fftSize)
	for i := range prod {
		rConj := complex(real(rFreq[i]), -imag(rFreq[i]))
		prod[i] = sFreq[i] * rConj
	}

	timeDomain := make([]complex128, fftSize)
	if err := plan.Inverse(timeDomain, prod); err != nil {
		return nil, fmt.Errorf("xcorr: inverse FFT failed: %w", err)
	}

	out := make([]float64, outLen)
	for n := 0; n < outLen; n++ {
		out[n] = real(timeDomain[n])
	}
	return out, nil
}

// FindPeak returns (i*, |a[i*]|) where i* >= start maximizes |a[i]|.
// Returns (0, 0) if start is out of range.
func FindPeak(a []float64, start int) (int, float64) {
	if start >= len(a) {
		return 0, 0
	}
	if start < 0 {
		start = 0
	}
	idx := start
	best := math.Abs(a[start])
	for i := start + 1; i < len(a); i++ {
		v := math.Abs(a[i])
		if v > best {
			best = v
			idx = i
		}
	}
	return idx, best
}

// Width3dB measures the -3 dB width (in samples) of the main lobe around
// peak index p: scanning outward from p in both directions while |a[i]|
// stays at or above |a[p]|/sqrt(2), it returns right-left, the distance
// between the outermost such samples (0 when neither neighbour qualifies).
func Width3dB(a []float64, p int) int {
	if len(a) == 0 || p < 0 || p >= len(a) {
		return 0
	}
	v := math.Abs(a[p])
	threshold := v / math.Sqrt2

	left := p
	for left > 0 && math.Abs(a[left-1]) >= threshold {
		left--
	}
	right := p
	for right < len(a)-1 && math.Abs(a[right+1]) >= threshold {
		right++
	}
	return right - left
}

// MedianAbs returns the median of |a[i]|, used as a robust noise-floor
// estimate for correlation outputs. For even-length input it returns the
// mean of the two middle elements.
func MedianAbs(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	abs := make([]float64, len(a))
	for i, v := range a {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)

	n := len(abs)
	if n%2 == 1 {
		return abs[n/2]
	}
	return (abs[n/2-1] + abs[n/2]) / 2
}
