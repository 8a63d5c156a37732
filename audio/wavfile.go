// Package-level WAV file helpers for saving and replaying a captured
// recording, backed by github.com/go-audio/wav. This is caller-side
// diagnostic tooling, not part of the ranging pipeline itself: it lets a
// calibration or probe recording captured once on real hardware be saved
// and replayed through the pipeline in tests without a live microphone,
// following the decoder/encoder usage shape of
// tphakala-go-audio-resampler's cmd/resample-wav.
package audio

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcm16Max = 32767.0

// SaveWAV writes samples (mono, in [-1, 1]) to path as 16-bit PCM at
// sampleRate, for later inspection or replay.
func SaveWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create wav file: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	ints := make([]int, len(samples))
	for i, v := range samples {
		ints[i] = int(math.Round(float64(v) * pcm16Max))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: write wav data: %w", err)
	}
	return enc.Close()
}

// LoadWAV reads a mono 16-bit PCM WAV file back into [-1, 1] float32
// samples, along with its sample rate.
func LoadWAV(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: open wav file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("audio: invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("audio: decode wav data: %w", err)
	}

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / pcm16Max
	}
	return samples, buf.Format.SampleRate, nil
}
