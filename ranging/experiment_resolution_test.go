package ranging

import (
	"testing"

	"github.com/Aryan181/acoustic-ranging/chirp"
)

func buildStitchableSegment(t *testing.T, cfg Config, delaySamples int) []float64 {
	t.Helper()
	fundamentalRef, err := chirp.Generate(chirp.Params{
		StartHz: cfg.FundamentalLowHz, EndHz: cfg.FundamentalHighHz,
		Length: cfg.ChirpLen, SampleRate: cfg.SampleRate, Amplitude: 1,
	})
	if err != nil {
		t.Fatalf("chirp.Generate: %v", err)
	}
	aliasRef, err := chirp.Generate(chirp.Params{
		StartHz: cfg.AliasHighHz, EndHz: cfg.AliasLowHz,
		Length: cfg.ChirpLen, SampleRate: cfg.SampleRate, Amplitude: 0.3,
	})
	if err != nil {
		t.Fatalf("chirp.Generate: %v", err)
	}

	segment := make([]float64, cfg.SegmentLen)
	for i := range fundamentalRef {
		j := delaySamples + i
		if j >= 0 && j < len(segment) {
			segment[j] += fundamentalRef[i] + aliasRef[i]
		}
	}
	return segment
}

func TestRunResolutionStitchedNarrowerThanFundamental(t *testing.T) {
	cfg := testConfig()
	segment := buildStitchableSegment(t, cfg, 60)

	result := runResolution(segment, nil, cfg)
	if result.FundamentalWidth == 0 || result.StitchedWidth == 0 {
		t.Fatalf("expected non-zero widths: %+v", result)
	}
	if result.StitchedWidth >= result.FundamentalWidth {
		t.Fatalf("stitched width (%d) not narrower than fundamental width (%d)",
			result.StitchedWidth, result.FundamentalWidth)
	}
	if !result.Passed {
		t.Fatalf("expected resolution experiment to pass: %+v", result)
	}
}

func TestRunResolutionEmptySegment(t *testing.T) {
	cfg := testConfig()
	result := runResolution(nil, nil, cfg)
	if result.Passed {
		t.Fatalf("expected no pass for empty segment")
	}
}
