// Package calib implements timing-aligned least-squares subtraction of a
// stable calibration template from a signal, removing the direct-path
// response that is common to both.
//
// The lag-search-then-subtract shape mirrors the bounded, epsilon-guarded
// search the teacher uses for its regularized inverse filters in
// measure/sweep: try a small set of candidate alignments, score each, and
// fall back to a no-op when the signal has no usable energy to match.
package calib

const (
	// MaxShift bounds the lag search to [-MaxShift, +MaxShift] samples.
	MaxShift = 10

	epsilon = 1e-20
)

// Subtract searches integer lags delta in [-MaxShift, +MaxShift] for the
// one maximizing the inner product sum(x[i+delta] * c[i]) over the overlap
// region, using only positive inner products (a negative maximum is
// treated as no alignment found). It then shifts c by the best delta into
// a zero-padded buffer c', computes the least-squares scale
// alpha = <x, c'> / <c', c'>, and returns x - alpha*c' over the overlap,
// with samples beyond the template's effective length copied unchanged
// from x.
//
// If no positive-correlation alignment is found, or <c', c'> < epsilon,
// x is returned unchanged (copied, not aliased).
func Subtract(x, c []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	n := len(c)
	if n == 0 || len(x) == 0 {
		return out
	}

	bestDelta := 0
	bestScore := 0.0
	found := false

	for delta := -MaxShift; delta <= MaxShift; delta++ {
		score := innerProductShifted(x, c, delta)
		if score > bestScore {
			bestScore = score
			bestDelta = delta
			found = true
		}
	}
	if !found {
		return out
	}

	shifted := shift(c, bestDelta, len(x))

	var xc, cc float64
	overlap := n
	if overlap > len(x) {
		overlap = len(x)
	}
	for i := 0; i < len(x); i++ {
		xc += x[i] * shifted[i]
		cc += shifted[i] * shifted[i]
	}
	if cc < epsilon {
		return out
	}
	alpha := xc / cc

	for i := 0; i < overlap; i++ {
		out[i] = x[i] - alpha*shifted[i]
	}
	return out
}

// innerProductShifted computes sum(x[i+delta]*c[i]) over the region where
// both indices are valid.
func innerProductShifted(x, c []float64, delta int) float64 {
	var sum float64
	for i := 0; i < len(c); i++ {
		xi := i + delta
		if xi < 0 || xi >= len(x) {
			continue
		}
		sum += x[xi] * c[i]
	}
	return sum
}

// shift places c into a zero-padded buffer of length outLen such that
// shifted[i+delta] = c[i] for valid indices.
func shift(c []float64, delta, outLen int) []float64 {
	out := make([]float64, outLen)
	for i, v := range c {
		j := i + delta
		if j < 0 || j >= outLen {
			continue
		}
		out[j] = v
	}
	return out
}
