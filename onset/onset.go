// Package onset locates the exact sample index of each transmitted chirp
// cycle within a recording, using a coarse correlation over the first few
// cycles followed by a per-cycle refine search anchored to the previously
// accepted onset.
//
// Anchoring each cycle's search window to the previous cycle's accepted
// onset (rather than a fixed multiple of the nominal cycle length) lets the
// detector self-correct against slow sample-rate drift between the
// transmitter and the recording clock; this self-correcting search has no
// direct precedent in the teacher corpus (noted as an Open Question
// resolution in DESIGN.md) and is implemented directly from spec.md §4.3.
package onset

import (
	"github.com/Aryan181/acoustic-ranging/dsp/xcorr"
)

// Params configures onset detection.
type Params struct {
	CycleLength int // L_cycle, nominal samples between consecutive onsets
	Cycles      int // N_cycles, number of cycles to search for
	Window      int // W, refine search half-width in samples
}

// Detect returns the onset indices of up to p.Cycles chirp cycles within
// recording, using template as the matched-filter reference for both the
// coarse and refine passes.
//
// The coarse pass cross-correlates the first min(len(recording), 4*CycleLength)
// samples against template; the absolute-maximum index is the first cycle's
// onset. Each subsequent cycle's expected position is the previous accepted
// onset plus CycleLength; a refine search within +/-Window samples of that
// expected position yields the accepted onset for that cycle.
//
// Detection stops early (returning fewer than p.Cycles onsets) once a
// refine window would extend past the recording.
func Detect(recording, template []float64, p Params) []int {
	if len(recording) == 0 || len(template) == 0 || p.Cycles <= 0 {
		return nil
	}

	coarseLen := 4 * p.CycleLength
	if coarseLen > len(recording) {
		coarseLen = len(recording)
	}
	if coarseLen < len(template) {
		return nil
	}

	coarseCorr, err := xcorr.Correlate(recording[:coarseLen], template)
	if err != nil {
		return nil
	}
	o0, _ := xcorr.FindPeak(coarseCorr, 0)

	onsets := make([]int, 0, p.Cycles)
	onsets = append(onsets, o0)

	for j := 1; j < p.Cycles; j++ {
		expected := onsets[j-1] + p.CycleLength

		winStart := expected - p.Window
		if winStart < 0 {
			winStart = 0
		}
		winEnd := expected + p.Window
		maxStart := len(recording) - len(template)
		if winEnd > maxStart {
			winEnd = maxStart
		}
		if winEnd+len(template) > len(recording) || winStart > winEnd {
			break
		}

		segment := recording[winStart : winEnd+len(template)]
		corr, err := xcorr.Correlate(segment, template)
		if err != nil {
			break
		}
		localIdx, _ := xcorr.FindPeak(corr, 0)
		onsets = append(onsets, winStart+localIdx)
	}

	return onsets
}
