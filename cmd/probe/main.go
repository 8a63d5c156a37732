// Command probe runs a calibration and a probe pass through the acoustic
// ranging pipeline against a synthetic audio environment (no microphone
// required) and prints the three experiment verdicts.
//
// Usage:
//
//	probe [flags]
//
// Examples:
//
//	probe
//	probe -reflect-mm 300 -reflect-gain 0.06
//	probe -dump /tmp/probe.wav
//	probe -replay /tmp/probe.wav
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Aryan181/acoustic-ranging/audio"
	"github.com/Aryan181/acoustic-ranging/chirp"
	"github.com/Aryan181/acoustic-ranging/ranging"
	"github.com/Aryan181/acoustic-ranging/ui"
)

func main() {
	reflectMM := flag.Float64("reflect-mm", 300, "simulated one-way reflector distance in mm")
	reflectGain := flag.Float64("reflect-gain", 0.03, "simulated reflection amplitude (linear gain on a delayed copy of the playback)")
	noiseDB := flag.Float64("noise-db", -40, "simulated noise floor in dBFS")
	dumpPath := flag.String("dump", "", "if set, save the probe recording to this .wav path")
	replayPath := flag.String("replay", "", "if set, skip the simulated probe pass and analyze this .wav recording instead (-reflect-mm, -reflect-gain, -noise-db are ignored for it)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: probe [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs calibration and a probe pass against a synthetic audio environment.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := ranging.DefaultConfig()
	state := &ui.ControlState{}

	sim, err := audio.NewSimulator(cfg.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		os.Exit(1)
	}
	state.SetEnvironmentReady(true)

	template, err := chirp.Generate(chirp.Params{
		StartHz: cfg.FundamentalLowHz, EndHz: cfg.FundamentalHighHz,
		Length: cfg.ChirpLen, SampleRate: cfg.SampleRate, Amplitude: 1,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		os.Exit(1)
	}

	playback, err := chirp.BuildPlayback(chirp.PlaybackParams{
		Chirp:        chirp.Params{StartHz: cfg.FundamentalLowHz, EndHz: cfg.FundamentalHighHz, Length: cfg.ChirpLen, SampleRate: cfg.SampleRate, Amplitude: 1},
		LeadSamples:  cfg.LeadLen,
		GuardSamples: cfg.GuardLen,
		Cycles:       cfg.Cycles,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		os.Exit(1)
	}
	duration := float64(len(playback)) / cfg.SampleRate

	if !state.CanCalibrate() {
		fmt.Fprintln(os.Stderr, "probe: environment not ready for calibration")
		os.Exit(1)
	}

	calRec, err := sim.WithNoiseFloor(*noiseDB).PlayAndRecord(toFloat32(playback), duration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: calibration recording failed: %v\n", err)
		os.Exit(1)
	}
	calibration := ranging.Calibrate(toFloat64(calRec.Samples), template, calRec.SampleRate)
	state.SetCalibrated(true)

	if !state.CanRunProbe() {
		fmt.Fprintln(os.Stderr, "probe: no calibration template available")
		os.Exit(1)
	}

	var probeRec audio.Recording
	if *replayPath != "" {
		samples, sampleRate, err := audio.LoadWAV(*replayPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "probe: replay failed: %v\n", err)
			os.Exit(1)
		}
		probeRec = audio.Recording{Samples: samples, SampleRate: float64(sampleRate)}
	} else {
		delaySamples := int(*reflectMM / 1000 / cfg.SpeedOfSoundMPS * 2 * cfg.SampleRate)
		probeSim, err := audio.NewSimulator(cfg.SampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "probe: %v\n", err)
			os.Exit(1)
		}
		probeRec, err = probeSim.WithNoiseFloor(*noiseDB).WithReflection(delaySamples, *reflectGain).PlayAndRecord(toFloat32(playback), duration)
		if err != nil {
			fmt.Fprintf(os.Stderr, "probe: probe recording failed: %v\n", err)
			os.Exit(1)
		}

		if *dumpPath != "" {
			if err := audio.SaveWAV(*dumpPath, probeRec.Samples, int(probeRec.SampleRate)); err != nil {
				fmt.Fprintf(os.Stderr, "probe: dump failed: %v\n", err)
			}
		}
	}

	result := ranging.Analyze(toFloat64(probeRec.Samples), template, probeRec.SampleRate, &calibration)
	printResult(result)
}

func printResult(r ranging.ProbeResult) {
	glyph := func(passed bool) string {
		if passed {
			return "PASS"
		}
		return "FAIL"
	}

	fmt.Printf("valid cycles: %d\n\n", r.ValidCycles)

	fmt.Printf("[%s] alias detection\n", glyph(r.Alias.Passed))
	fmt.Printf("  fundamental: %.1f dB  alias: %.1f dB  noise: %.1f dB  snr: %.1f dB\n",
		r.Alias.FundamentalDB, r.Alias.AliasDB, r.Alias.NoiseDB, r.Alias.SNRDB)

	fmt.Printf("\n[%s] range coherence\n", glyph(r.Range.Passed))
	fmt.Printf("  peak sample: %d  distance: %.1f mm  peak strength: %.3f  direction ratio: %.2f\n",
		r.Range.PeakSample, r.Range.DistanceMM, r.Range.AliasPeakStrength, r.Range.DirectionRatio)

	fmt.Printf("\n[%s] resolution improvement\n", glyph(r.Resolution.Passed))
	fmt.Printf("  fundamental width: %d  stitched width: %d  ratio: %.2f\n",
		r.Resolution.FundamentalWidth, r.Resolution.StitchedWidth, r.Resolution.Ratio)

	fmt.Printf("\nall confirmed: %v\n", r.AllConfirmed)
}

func toFloat32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}

func toFloat64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}
