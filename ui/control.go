// Package ui implements the enablement logic behind the §6 user-visible
// surface: a Calibrate action and a Run Probe action. Actual rendering
// (result cards with pass/fail glyphs) is the out-of-scope presentation
// layer named in §1; this package only tracks the two booleans a real UI
// would bind its buttons to.
package ui

// ControlState tracks whether the environment is ready for calibration and
// whether a calibration template exists, which together gate the two
// actions a caller exposes to the user.
type ControlState struct {
	environmentReady bool
	calibrated       bool
}

// SetEnvironmentReady marks whether the audio session is ready to run
// (e.g. a Source was constructed without error).
func (c *ControlState) SetEnvironmentReady(ready bool) {
	c.environmentReady = ready
}

// SetCalibrated marks whether a calibration template is available.
func (c *ControlState) SetCalibrated(calibrated bool) {
	c.calibrated = calibrated
}

// CanCalibrate reports whether the Calibrate action should be enabled.
func (c *ControlState) CanCalibrate() bool {
	return c.environmentReady
}

// CanRunProbe reports whether the Run Probe action should be enabled.
func (c *ControlState) CanRunProbe() bool {
	return c.environmentReady && c.calibrated
}
