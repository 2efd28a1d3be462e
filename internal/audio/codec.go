// Package audio implements the PCM16/base64 codec and the capture framer
// used by the voice channel. Capture audio is 16 kHz mono float32; playback
// audio from the remote service is 24 kHz mono PCM16.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	CaptureRate  = 16000
	PlaybackRate = 24000

	// FrameSamples is the number of capture samples per transport frame.
	FrameSamples = 4096
)

// DecodeError reports malformed base64 input.
type DecodeError struct {
	cause error
}

func (e *DecodeError) Error() string { return "audio: invalid base64: " + e.cause.Error() }
func (e *DecodeError) Unwrap() error { return e.cause }

// FormatError reports a PCM byte payload whose length does not divide into
// whole samples for the given channel count.
type FormatError struct {
	Len      int
	Channels int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("audio: %d bytes is not a whole number of %d-channel pcm16 samples", e.Len, e.Channels)
}

func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func DecodeBase64(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, &DecodeError{cause: err}
	}
	return data, nil
}

// SamplesToPCM16 converts float samples in [-1.0, 1.0] to little-endian
// signed 16-bit PCM via round(s * 32768). Out-of-range input is not clamped
// and wraps on conversion; callers are expected to feed normalized capture
// samples.
func SamplesToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int16(int32(math.Round(float64(s) * 32768)))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// PCM16ToSamples reinterprets data as interleaved little-endian signed 16-bit
// samples, de-interleaves by channel and normalizes to [-1.0, 1.0].
func PCM16ToSamples(data []byte, sampleRate, channels int) (*Buffer, error) {
	if channels <= 0 {
		return nil, &FormatError{Len: len(data), Channels: channels}
	}
	if len(data)%(channels*2) != 0 {
		return nil, &FormatError{Len: len(data), Channels: channels}
	}

	frames := len(data) / (channels * 2)
	chans := make([][]float32, channels)
	for c := range chans {
		chans[c] = make([]float32, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			off := (i*channels + c) * 2
			v := int16(binary.LittleEndian.Uint16(data[off:]))
			chans[c][i] = float32(v) / 32768.0
		}
	}

	return &Buffer{
		SampleRate: sampleRate,
		Channels:   chans,
	}, nil
}

// Buffer is a decoded chunk of playable audio.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}
