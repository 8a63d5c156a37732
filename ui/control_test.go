package ui

import "testing"

func TestControlStateGating(t *testing.T) {
	var s ControlState

	if s.CanCalibrate() {
		t.Fatal("CanCalibrate should be false before environment is ready")
	}
	if s.CanRunProbe() {
		t.Fatal("CanRunProbe should be false before environment is ready")
	}

	s.SetEnvironmentReady(true)
	if !s.CanCalibrate() {
		t.Fatal("CanCalibrate should be true once environment is ready")
	}
	if s.CanRunProbe() {
		t.Fatal("CanRunProbe should still be false before calibration")
	}

	s.SetCalibrated(true)
	if !s.CanRunProbe() {
		t.Fatal("CanRunProbe should be true once calibrated")
	}

	s.SetEnvironmentReady(false)
	if s.CanRunProbe() {
		t.Fatal("CanRunProbe should be false once environment becomes unready")
	}
}
