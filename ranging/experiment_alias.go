package ranging

import (
	"github.com/Aryan181/acoustic-ranging/dsp/band"
	"github.com/Aryan181/acoustic-ranging/dsp/core"
)

// runAliasDetection implements experiment 1 (§4.5): for each valid onset,
// compare alias-band power while the chirp is transmitting against
// alias-band power during the following guard interval. Energy that is
// present only while the chirp is active is time-locked to the
// transmission and cannot be explained by environmental noise.
func runAliasDetection(recording []float64, onsets []int, cfg Config) AliasDetection {
	var sumAliasChirp, sumAliasGuard, sumFundamental float64
	valid := 0

	for _, o := range onsets {
		if o < 0 || o+cfg.CycleLen > len(recording) {
			continue
		}
		chirpWindow := recording[o : o+cfg.ChirpLen]
		guardWindow := recording[o+cfg.ChirpLen : o+cfg.CycleLen]

		chirpSpec, err := band.PowerSpectrum(chirpWindow, cfg.BlockSize, cfg.SampleRate)
		if err != nil {
			continue
		}
		guardSpec, err := band.PowerSpectrum(guardWindow, cfg.BlockSize, cfg.SampleRate)
		if err != nil {
			continue
		}

		sumAliasChirp += band.Power(chirpSpec, cfg.AliasLowHz, cfg.AliasHighHz, cfg.BlockSize, cfg.SampleRate)
		sumAliasGuard += band.Power(guardSpec, cfg.AliasLowHz, cfg.AliasHighHz, cfg.BlockSize, cfg.SampleRate)
		sumFundamental += band.Power(chirpSpec, cfg.FundamentalLowHz, cfg.FundamentalHighHz, cfg.BlockSize, cfg.SampleRate)
		valid++
	}

	if valid == 0 {
		return AliasDetection{
			FundamentalDB: core.LinearPowerToDB(band.Epsilon),
			AliasDB:       core.LinearPowerToDB(band.Epsilon),
			NoiseDB:       core.LinearPowerToDB(band.Epsilon),
		}
	}

	n := float64(valid)
	fundamentalDB := core.LinearPowerToDB(maxEps(sumFundamental / n))
	aliasDB := core.LinearPowerToDB(maxEps(sumAliasChirp / n))
	noiseDB := core.LinearPowerToDB(maxEps(sumAliasGuard / n))
	snr := aliasDB - noiseDB

	return AliasDetection{
		FundamentalDB:         fundamentalDB,
		AliasDB:               aliasDB,
		NoiseDB:               noiseDB,
		SNRDB:                 snr,
		AliasBelowFundamental: fundamentalDB - aliasDB,
		Passed:                snr > cfg.SNRThresholdDB,
	}
}

func maxEps(x float64) float64 {
	if x < band.Epsilon {
		return band.Epsilon
	}
	return x
}
