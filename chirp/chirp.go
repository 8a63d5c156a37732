// Package chirp generates the transmitted linear-FM waveform and the full
// playback buffer built from repeated copies of it.
//
// The phase-continuous formula below is the same one the teacher's linear
// sweep generator uses (measure/sweep.LinearSweep.Generate), generalized to
// accept a start frequency above the end frequency so the same function can
// synthesize both the transmitted up-chirp and the down-chirp references
// used as alias templates.
package chirp

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by chirp generation.
var (
	ErrInvalidSampleRate = errors.New("chirp: sample rate must be positive")
	ErrInvalidLength     = errors.New("chirp: length must be positive")
	ErrInvalidFrequency  = errors.New("chirp: frequencies must be positive")
)

// Params describes a single linear FM chirp.
type Params struct {
	StartHz    float64 // f0
	EndHz      float64 // f1; may be less than StartHz for a down-chirp
	Length     int     // samples, L_c
	SampleRate float64 // f_s
	Amplitude  float64 // A
}

// Validate checks that p describes a generatable chirp.
func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if p.Length <= 0 {
		return ErrInvalidLength
	}
	if p.StartHz <= 0 || p.EndHz <= 0 {
		return ErrInvalidFrequency
	}
	return nil
}

// Generate synthesizes a phase-continuous linear FM sinusoid:
//
//	phi(t) = 2*pi*(f0*t + 0.5*k*t^2),  k = (f1-f0)/T,  T = Length/SampleRate
//	s[i] = Amplitude * sin(phi(i/SampleRate))
//
// StartHz may be greater than EndHz to synthesize a down-chirp. A zero
// Amplitude is treated as 1.
func Generate(p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	amp := p.Amplitude
	if amp == 0 {
		amp = 1
	}

	T := float64(p.Length) / p.SampleRate
	k := (p.EndHz - p.StartHz) / T

	out := make([]float64, p.Length)
	for i := range out {
		t := float64(i) / p.SampleRate
		phase := 2 * math.Pi * (p.StartHz*t + 0.5*k*t*t)
		out[i] = amp * math.Sin(phase)
	}
	return out, nil
}

// PlaybackParams describes the full periodic playback waveform built from
// repeated copies of a fundamental chirp.
type PlaybackParams struct {
	Chirp        Params
	LeadSamples  int // L_lead, leading silence absorbing audio-path latency
	GuardSamples int // L_guard, silence between cycles
	Cycles       int // N_cycles
}

// BuildPlayback concatenates LeadSamples of silence followed by Cycles
// repetitions of (chirp template, GuardSamples of silence).
//
// Total length is LeadSamples + Cycles*(len(template) + GuardSamples).
func BuildPlayback(p PlaybackParams) ([]float64, error) {
	template, err := Generate(p.Chirp)
	if err != nil {
		return nil, err
	}
	if p.LeadSamples < 0 || p.GuardSamples < 0 {
		return nil, fmt.Errorf("chirp: lead and guard samples must be >= 0")
	}
	if p.Cycles <= 0 {
		return nil, fmt.Errorf("chirp: cycles must be > 0: %d", p.Cycles)
	}

	cycleLen := len(template) + p.GuardSamples
	total := p.LeadSamples + p.Cycles*cycleLen
	out := make([]float64, total)

	offset := p.LeadSamples
	for c := 0; c < p.Cycles; c++ {
		copy(out[offset:offset+len(template)], template)
		offset += cycleLen
	}
	return out, nil
}
