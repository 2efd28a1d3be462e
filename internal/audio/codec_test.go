package audio

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestBase64RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0x00, 0x01, 0x02, 0xFF},
		{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x80, 0x7F},
	}
	for _, in := range inputs {
		out, err := DecodeBase64(EncodeBase64(in))
		if err != nil {
			t.Fatalf("round trip failed for %v: %v", in, err)
		}
		if !bytes.Equal(in, out) {
			t.Errorf("round trip mismatch: in %v, out %v", in, out)
		}
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	_, err := DecodeBase64("not!!base64@@")
	if err == nil {
		t.Fatal("expected error for invalid base64")
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Errorf("expected *DecodeError, got %T", err)
	}
}

func TestSamplesToPCM16(t *testing.T) {
	samples := []float32{0.0, 0.5, -0.5, -1.0}
	pcm := SamplesToPCM16(samples)
	if len(pcm) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(pcm))
	}

	want := []int16{0, 16384, -16384, -32768}
	for i, w := range want {
		got := int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
		if got != w {
			t.Errorf("sample %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestSamplesToPCM16_OverflowWraps(t *testing.T) {
	// +1.0 maps to 32768 which wraps to -32768 in int16; the conversion is
	// intentionally unclamped.
	pcm := SamplesToPCM16([]float32{1.0})
	got := int16(uint16(pcm[0]) | uint16(pcm[1])<<8)
	if got != -32768 {
		t.Errorf("expected wraparound to -32768, got %d", got)
	}
}

func TestPCM16ToSamples_Mono(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xC0} // 0, 16384, -16384
	buf, err := PCM16ToSamples(pcm, PlaybackRate, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf.Channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(buf.Channels))
	}
	want := []float32{0, 0.5, -0.5}
	for i, w := range want {
		if math.Abs(float64(buf.Channels[0][i]-w)) > 1e-6 {
			t.Errorf("sample %d: expected %f, got %f", i, w, buf.Channels[0][i])
		}
	}
}

func TestPCM16ToSamples_Stereo(t *testing.T) {
	// Interleaved L R L R.
	pcm := []byte{0x00, 0x40, 0x00, 0xC0, 0x00, 0x40, 0x00, 0xC0}
	buf, err := PCM16ToSamples(pcm, PlaybackRate, 2)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.Frames())
	}
	if buf.Channels[0][0] != 0.5 || buf.Channels[1][0] != -0.5 {
		t.Errorf("de-interleave wrong: L=%f R=%f", buf.Channels[0][0], buf.Channels[1][0])
	}
}

func TestPCM16ToSamples_BadLength(t *testing.T) {
	_, err := PCM16ToSamples([]byte{0x00, 0x01, 0x02}, PlaybackRate, 1)
	if err == nil {
		t.Fatal("expected error for odd byte count")
	}
	var fmtErr *FormatError
	if !errors.As(err, &fmtErr) {
		t.Errorf("expected *FormatError, got %T", err)
	}

	// 6 bytes is 3 mono samples but only 1.5 stereo frames.
	if _, err := PCM16ToSamples(make([]byte, 6), PlaybackRate, 2); err == nil {
		t.Error("expected error for partial stereo frame")
	}
}

func TestPCMRoundTrip(t *testing.T) {
	samples := []float32{0.0, 0.25, -0.25, 0.9, -0.9, 0.001, -1.0}
	buf, err := PCM16ToSamples(SamplesToPCM16(samples), CaptureRate, 1)
	if err != nil {
		t.Fatal(err)
	}
	const tol = 1.0 / 32768
	for i, s := range samples {
		if math.Abs(float64(buf.Channels[0][i]-s)) > tol {
			t.Errorf("sample %d: expected %f within %f, got %f", i, s, tol, buf.Channels[0][i])
		}
	}
}

func TestBufferDuration(t *testing.T) {
	buf := &Buffer{
		SampleRate: PlaybackRate,
		Channels:   [][]float32{make([]float32, 24000)},
	}
	if buf.Duration().Seconds() != 1.0 {
		t.Errorf("expected 1s, got %v", buf.Duration())
	}

	empty := &Buffer{SampleRate: PlaybackRate}
	if empty.Duration() != 0 {
		t.Errorf("expected 0 for empty buffer, got %v", empty.Duration())
	}
}
