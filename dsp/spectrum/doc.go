// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by external FFT backends. Only the
// magnitude-squared extraction this repository's band power measurement
// needs (dsp/band.PowerSpectrum) is kept; the teacher's broader spectral
// toolkit (magnitude, phase, group delay, interpolation, fractional-octave
// smoothing) has no caller in this pipeline and was trimmed.
package spectrum
