package coherent

import (
	"testing"

	"github.com/Aryan181/acoustic-ranging/internal/testutil"
)

func TestAverageOfIdenticalSegments(t *testing.T) {
	segLen := 100
	seg := testutil.DeterministicSine(18000, 48000, 1, segLen)

	recording := make([]float64, 1000)
	onsets := []int{10, 310, 610}
	for _, o := range onsets {
		copy(recording[o:o+segLen], seg)
	}

	avg, count := Average(recording, onsets, segLen)
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	testutil.RequireSliceNearlyEqual(t, avg, seg, 1e-9)
}

func TestAverageReducesIndependentNoise(t *testing.T) {
	segLen := 256
	signal := testutil.DeterministicSine(18000, 48000, 0.2, segLen)

	onsets := []int{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000}
	recording := make([]float64, 8000)
	for i, o := range onsets {
		noise := testutil.DeterministicNoise(int64(i+1), 1.0, segLen)
		for k := 0; k < segLen; k++ {
			recording[o+k] = signal[k] + noise[k]
		}
	}

	avg, count := Average(recording, onsets, segLen)
	if count != len(onsets) {
		t.Fatalf("count = %d, want %d", count, len(onsets))
	}

	avgDiff, err := testutil.MaxAbsDiff(avg, signal)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}

	singleDiff, err := testutil.MaxAbsDiff(recording[0:segLen], signal)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}

	if avgDiff >= singleDiff {
		t.Fatalf("averaging did not reduce noise: avgDiff=%v singleDiff=%v", avgDiff, singleDiff)
	}
}

func TestAverageSkipsOutOfRangeOnsets(t *testing.T) {
	segLen := 10
	recording := make([]float64, 50)
	for i := range recording {
		recording[i] = 1
	}
	onsets := []int{5, -1, 45, 100}

	avg, count := Average(recording, onsets, segLen)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	for _, v := range avg {
		if v != 1 {
			t.Fatalf("got %v, want 1", v)
		}
	}
}

func TestAverageNoValidOnsets(t *testing.T) {
	avg, count := Average([]float64{1, 2, 3}, []int{10, 20}, 5)
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
	for _, v := range avg {
		if v != 0 {
			t.Fatalf("expected zero-filled slice, got %v", v)
		}
	}
}
