package ranging

import (
	"github.com/Aryan181/acoustic-ranging/coherent"
	"github.com/Aryan181/acoustic-ranging/onset"
)

// AliasDetection is the result of experiment 1 (§4.5).
type AliasDetection struct {
	FundamentalDB         float64
	AliasDB               float64
	NoiseDB               float64
	SNRDB                 float64
	AliasBelowFundamental float64
	Passed                bool
}

// RangeCoherence is the result of experiment 2 (§4.6).
type RangeCoherence struct {
	PeakSample        int
	DistanceMM        float64
	AliasPeakStrength float64
	DirectionRatio    float64
	Passed            bool
}

// Resolution is the result of experiment 3 (§4.7).
type Resolution struct {
	FundamentalWidth int
	StitchedWidth    int
	Ratio            float64
	Passed           bool
}

// ProbeResult is the full §6 result record returned by Analyze.
type ProbeResult struct {
	Alias        AliasDetection
	Range        RangeCoherence
	Resolution   Resolution
	ValidCycles  int
	AllConfirmed bool
}

// CalibrationTemplate is the averaged direct-path segment produced by
// Calibrate, to be reused for every subsequent Analyze call in the session.
type CalibrationTemplate struct {
	Segment []float64
}

// onsetParams builds the onset.Params a given Config implies.
func onsetParams(cfg Config) onset.Params {
	return onset.Params{
		CycleLength: cfg.CycleLen,
		Cycles:      cfg.Cycles,
		Window:      cfg.RefineWindow,
	}
}

// averagedSegment runs onset detection and coherent averaging, returning the
// averaged segment and the number of valid cycles.
func averagedSegment(recording, chirpTemplate []float64, cfg Config) ([]float64, int) {
	onsets := onset.Detect(recording, chirpTemplate, onsetParams(cfg))
	if len(onsets) == 0 {
		return make([]float64, cfg.SegmentLen), 0
	}
	return coherent.Average(recording, onsets, cfg.SegmentLen)
}

// Calibrate runs the coherent averager on a no-reflector recording and
// retains the averaged segment as the direct-path template (§4.4, §6).
func Calibrate(recording, chirpTemplate []float64, sampleRate float64, opts ...Option) CalibrationTemplate {
	cfg := Apply(opts...)
	cfg.SampleRate = sampleRate

	segment, _ := averagedSegment(recording, chirpTemplate, cfg)
	return CalibrationTemplate{Segment: segment}
}

// Analyze runs all three experiments against recording and returns the full
// probe result. calibration may be nil, in which case raw (uncalibrated)
// band signals are analyzed (§8 scenario 6).
func Analyze(recording, chirpTemplate []float64, sampleRate float64, calibration *CalibrationTemplate, opts ...Option) ProbeResult {
	cfg := Apply(opts...)
	cfg.SampleRate = sampleRate

	onsets := onset.Detect(recording, chirpTemplate, onsetParams(cfg))
	segment, valid := coherentOrEmpty(recording, onsets, cfg)

	alias := runAliasDetection(recording, onsets, cfg)
	rangeResult := runRangeCoherence(segment, calibration, cfg)
	resolution := runResolution(segment, calibration, cfg)

	return ProbeResult{
		Alias:        alias,
		Range:        rangeResult,
		Resolution:   resolution,
		ValidCycles:  valid,
		AllConfirmed: alias.Passed && rangeResult.Passed && resolution.Passed,
	}
}

func coherentOrEmpty(recording []float64, onsets []int, cfg Config) ([]float64, int) {
	if len(onsets) == 0 {
		return make([]float64, cfg.SegmentLen), 0
	}
	return coherent.Average(recording, onsets, cfg.SegmentLen)
}
