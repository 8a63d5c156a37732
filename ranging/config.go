// Package ranging orchestrates the full analysis pipeline: onset detection,
// coherent averaging, band isolation, calibration subtraction, matched
// filtering, and the three quantitative experiments that together confirm
// and quantify the super-Nyquist alias ranging effect.
package ranging

import "github.com/Aryan181/acoustic-ranging/dsp/core"

// Config carries every operational parameter from spec.md's "Operational
// parameters" table. It embeds core.ProcessorConfig for the two settings
// (SampleRate, BlockSize) that package already models, applied through
// core.ApplyProcessorOptions the same way the teacher composes it, and adds
// this pipeline's own functional-options layer on top. Ready-made Options
// exist for the sample rate, FFT size, cycle count and thresholds; the
// remaining fields keep their DefaultConfig values unless a caller passes
// its own Option that sets them.
type Config struct {
	core.ProcessorConfig // SampleRate (f_s), BlockSize (N_fft)

	ChirpLen   int // L_c
	GuardLen   int // L_guard
	CycleLen   int // L_cycle = L_c + L_guard
	Cycles     int // N_cycles
	LeadLen    int // L_lead
	SegmentLen int // L_seg = L_c + M
	Margin     int // M

	FundamentalLowHz  float64 // chirp f0
	FundamentalHighHz float64 // chirp f1
	AliasLowHz        float64 // alias band low edge
	AliasHighHz       float64 // alias band high edge (== FundamentalLowHz)

	RefineWindow int // W, onset refine half-width
	SkipLag      int // skip_lag, leading correlation lags ignored

	SNRThresholdDB    float64 // alias SNR pass threshold
	PeakToMedianRatio float64 // range-coherence peak/median threshold
	DirectionRatio    float64 // range-coherence direction threshold

	SpeedOfSoundMPS float64 // for range-from-samples conversion
}

// DefaultConfig returns the nominal hardware configuration from spec.md §6.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.ApplyProcessorOptions(
			core.WithSampleRate(48000),
			core.WithBlockSize(4096),
		),

		ChirpLen:   2400,
		GuardLen:   1200,
		CycleLen:   3600,
		Cycles:     200,
		LeadLen:    24000,
		SegmentLen: 3000,
		Margin:     600,

		FundamentalLowHz:  16000,
		FundamentalHighHz: 20000,
		AliasLowHz:        8000,
		AliasHighHz:       16000,

		RefineWindow: 50,
		SkipLag:      20,

		SNRThresholdDB:    3.0,
		PeakToMedianRatio: 2.0,
		DirectionRatio:    1.5,

		SpeedOfSoundMPS: 343,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithSampleRate overrides the effective sample rate reported by the audio
// subsystem for a given session. Delegates to core.WithSampleRate against
// the embedded ProcessorConfig.
func WithSampleRate(hz float64) Option {
	return func(c *Config) {
		core.WithSampleRate(hz)(&c.ProcessorConfig)
	}
}

// WithFFTSize overrides the FFT size (N_fft) used by band power measurement
// and bandpass filtering. Delegates to core.WithBlockSize against the
// embedded ProcessorConfig.
func WithFFTSize(n int) Option {
	return func(c *Config) {
		core.WithBlockSize(n)(&c.ProcessorConfig)
	}
}

// WithCycles overrides the number of playback cycles.
func WithCycles(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Cycles = n
		}
	}
}

// WithThresholds overrides the three pass/fail thresholds.
func WithThresholds(snrDB, peakToMedian, direction float64) Option {
	return func(c *Config) {
		c.SNRThresholdDB = snrDB
		c.PeakToMedianRatio = peakToMedian
		c.DirectionRatio = direction
	}
}

// Apply returns DefaultConfig with opts applied in order.
func Apply(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
