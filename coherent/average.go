// Package coherent sums aligned per-cycle recording segments and divides by
// the number of valid cycles, attenuating incoherent noise by sqrt(N) while
// preserving a signal that repeats identically at every onset.
//
// The accumulate-in-place-then-divide shape follows spec.md's design note
// that mutable accumulators, not functional slice rebuilding, are the right
// shape for this operation — the same preallocate-and-update-in-place idiom
// the teacher uses for its vector kernels (internal/vecmath). The
// accumulator and per-cycle scratch buffer below are sized and cleared with
// dsp/core's buffer helpers (EnsureLen, Zero, CopyInto) rather than a bare
// make+loop, the same reuse idiom dsp/core.ProcessorConfig callers use for
// their own hot-loop buffers.
package coherent

import "github.com/Aryan181/acoustic-ranging/dsp/core"

// Average sums recording[o : o+segmentLen] for each onset o in onsets where
// the segment fits within recording, then divides by the count of such
// valid onsets. Segments that do not fit are silently skipped. Returns the
// averaged segment and the number of cycles that contributed to it.
//
// If no onset yields a valid segment, Average returns a zero-filled slice
// of length segmentLen and a count of 0.
func Average(recording []float64, onsets []int, segmentLen int) ([]float64, int) {
	var acc, scratch []float64
	acc = core.EnsureLen(acc, segmentLen)
	core.Zero(acc)
	scratch = core.EnsureLen(scratch, segmentLen)

	valid := 0
	for _, o := range onsets {
		if o < 0 || o+segmentLen > len(recording) {
			continue
		}
		core.CopyInto(scratch, recording[o:o+segmentLen])
		for i, v := range scratch {
			acc[i] += v
		}
		valid++
	}

	if valid == 0 {
		return acc, 0
	}

	inv := 1.0 / float64(valid)
	for i := range acc {
		acc[i] *= inv
	}
	return acc, valid
}
