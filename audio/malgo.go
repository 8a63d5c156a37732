// Device I/O backed by github.com/gen2brain/malgo's miniaudio bindings,
// adapted from the capture-device setup in the pack's own CW decoder
// (device config, callback-to-slice conversion, context lifecycle).
// Generalized here from capture-only to a duplex play-and-record device
// that satisfies the audio.Source contract in §6.
package audio

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/gen2brain/malgo"
)

const preferredBufferMS = 5

// MalgoSource plays a waveform through the default loudspeaker while
// recording from the default microphone using a single duplex device.
type MalgoSource struct {
	SampleRate int
}

// NewMalgoSource creates a duplex audio source at the given sample rate.
func NewMalgoSource(sampleRate int) *MalgoSource {
	return &MalgoSource{SampleRate: sampleRate}
}

// PlayAndRecord plays playback through the default output device while
// recording from the default input device, starting capture 200ms before
// playback and continuing 500ms after it ends, as required by §6.
func (s *MalgoSource) PlayAndRecord(playback []float32, expectedDuration float64) (Recording, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return Recording{}, fmt.Errorf("%w: %v", ErrSessionRefused, err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Duplex)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = 1
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 1
	deviceConfig.SampleRate = uint32(s.SampleRate)
	deviceConfig.PeriodSizeInMilliseconds = preferredBufferMS

	var (
		mu        sync.Mutex
		captured  []float32
		playPos   int
	)
	// Output frames of silence still to be written before playback starts,
	// so that capture runs 200ms ahead of it.
	preRoll := s.SampleRate / 5

	onFrames := func(pOutputSamples, pInputSamples []byte, framecount uint32) {
		mu.Lock()
		defer mu.Unlock()

		if len(pInputSamples) > 0 {
			in := unsafe.Slice((*float32)(unsafe.Pointer(&pInputSamples[0])), int(framecount))
			captured = append(captured, in...)
		}

		if len(pOutputSamples) > 0 {
			out := unsafe.Slice((*float32)(unsafe.Pointer(&pOutputSamples[0])), int(framecount))
			for i := range out {
				if preRoll > 0 {
					out[i] = 0
					preRoll--
				} else if playPos < len(playback) {
					out[i] = playback[playPos]
					playPos++
				} else {
					out[i] = 0
				}
			}
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onFrames})
	if err != nil {
		return Recording{}, fmt.Errorf("%w: %v", ErrBufferAllocationFailed, err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return Recording{}, fmt.Errorf("%w: %v", ErrDeviceAbsent, err)
	}
	defer func() { _ = device.Stop() }()

	// 200ms pre-roll + playback duration + 500ms tail, per the §6 contract.
	total := time.Duration(200)*time.Millisecond +
		time.Duration(expectedDuration*1000)*time.Millisecond +
		time.Duration(500)*time.Millisecond
	time.Sleep(total)

	mu.Lock()
	defer mu.Unlock()

	out := make([]float32, len(captured))
	copy(out, captured)
	return Recording{Samples: out, SampleRate: float64(device.SampleRate())}, nil
}
