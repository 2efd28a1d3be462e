package audio

import (
	"log/slog"
	"sync"
)

// SendFunc receives one PCM16-encoded frame. Errors are logged and the frame
// is dropped; the framer never retries.
type SendFunc func(pcm []byte) error

// Framer slices a continuous capture stream into fixed-size frames and hands
// each one to its send func as PCM16 bytes. It keeps no state beyond the
// samples of the frame currently being filled.
type Framer struct {
	frameSize int
	send      SendFunc
	log       *slog.Logger

	mu     sync.Mutex
	buf    []float32
	closed bool
}

func NewFramer(frameSize int, send SendFunc, log *slog.Logger) *Framer {
	if frameSize <= 0 {
		frameSize = FrameSamples
	}
	if log == nil {
		log = slog.Default()
	}
	return &Framer{
		frameSize: frameSize,
		send:      send,
		log:       log,
		buf:       make([]float32, 0, frameSize),
	}
}

// Push appends capture samples and emits one frame per frameSize samples
// accumulated, regardless of downstream backpressure.
func (f *Framer) Push(samples []float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.buf = append(f.buf, samples...)
	for len(f.buf) >= f.frameSize {
		frame := f.buf[:f.frameSize]
		pcm := SamplesToPCM16(frame)
		if err := f.send(pcm); err != nil {
			f.log.Warn("frame send failed, dropping", "bytes", len(pcm), "error", err)
		}
		f.buf = f.buf[f.frameSize:]
	}

	// Reclaim capacity once the tail is short again.
	if len(f.buf) < f.frameSize && cap(f.buf) > 4*f.frameSize {
		tail := make([]float32, len(f.buf), f.frameSize)
		copy(tail, f.buf)
		f.buf = tail
	}
}

// Close releases the framer. Residual samples shorter than one frame are
// discarded.
func (f *Framer) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.buf = nil
}
