// Package voicechannel bridges one dashboard connection to one live voice
// session: capture samples flow through the framer to the upstream session,
// returned audio flows through the playback scheduler back to the browser,
// and transcription fragments land in the session transcript.
package voicechannel

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schoolpulse/backend/internal/audio"
	"github.com/schoolpulse/backend/internal/gateway"
	"github.com/schoolpulse/backend/internal/metrics"
	"github.com/schoolpulse/backend/internal/playback"
	"github.com/schoolpulse/backend/internal/realtime"
	"github.com/schoolpulse/backend/internal/shared"
	"github.com/schoolpulse/backend/internal/transcript"
)

// Channel is one running voice session. It is created on a start command and
// torn down on stop, connection loss, or upstream close, whichever first.
type Channel struct {
	id      string
	conn    *gateway.ClientConn
	log     *slog.Logger
	metrics *metrics.Metrics

	transcript *transcript.Log
	scheduler  *playback.Scheduler
	framer     *audio.Framer
	session    *realtime.Session

	startedAt time.Time
	ready     chan struct{}
	endOnce   sync.Once
	ended     atomic.Bool
	onEnd     func(*Channel)
}

func newChannel(ctx context.Context, conn *gateway.ClientConn, cfg realtime.Config, m *metrics.Metrics, log *slog.Logger, onEnd func(*Channel)) (*Channel, error) {
	ch := &Channel{
		id:         shared.NewID("vch"),
		conn:       conn,
		metrics:    m,
		transcript: transcript.NewLog(),
		startedAt:  time.Now(),
		ready:      make(chan struct{}),
		onEnd:      onEnd,
	}
	ch.log = log.With("channel_id", ch.id)

	ch.scheduler = playback.NewScheduler(playback.NewClock(), ch.emitChunk, ch.log)

	conn.Send(gateway.StateEvent(realtime.StateConnecting.String()))

	sess, err := realtime.Connect(ctx, cfg, realtime.Events{
		OnOpen:                ch.handleOpen,
		OnAudio:               ch.handleAudio,
		OnUserTranscript:      func(text string) { ch.handleTranscript(transcript.RoleUser, text) },
		OnAssistantTranscript: func(text string) { ch.handleTranscript(transcript.RoleAssistant, text) },
		OnClosed:              ch.handleClosed,
	}, ch.log)
	if err != nil {
		return nil, err
	}
	ch.session = sess
	ch.framer = audio.NewFramer(audio.FrameSamples, ch.sendFrame, ch.log)
	close(ch.ready)

	ch.transcript.Append(transcript.RoleSystem, "session started")
	ch.metrics.RecordSessionStarted()
	ch.log.Info("voice channel started")
	return ch, nil
}

// PushSamples feeds capture samples into the framer. Samples arriving before
// the session is open, or after it ended, are discarded.
func (ch *Channel) PushSamples(samples []float32) {
	if ch.session.State() != realtime.StateOpen {
		return
	}
	ch.framer.Push(samples)
}

func (ch *Channel) sendFrame(pcm []byte) error {
	if err := ch.session.SendFrame(pcm); err != nil {
		ch.metrics.RecordFrameDropped()
		return err
	}
	ch.metrics.RecordFrameSent()
	return nil
}

func (ch *Channel) handleOpen() {
	ch.conn.Send(gateway.StateEvent(realtime.StateOpen.String()))
}

func (ch *Channel) handleAudio(pcm []byte) {
	buf, err := audio.PCM16ToSamples(pcm, audio.PlaybackRate, 1)
	if err != nil {
		ch.log.Warn("dropping malformed playback chunk", "error", err)
		return
	}
	ch.scheduler.Schedule(buf)
	ch.metrics.RecordChunkScheduled(buf.Duration().Seconds())
}

// emitChunk fires when a scheduled chunk is due. The browser plays it
// immediately; StartMs carries its position on the session timeline.
func (ch *Channel) emitChunk(buf *audio.Buffer, start time.Duration) {
	pcm := audio.SamplesToPCM16(buf.Channels[0])
	ch.conn.Send(&gateway.ServerEvent{
		Type:       gateway.EventAudio,
		Data:       audio.EncodeBase64(pcm),
		SampleRate: buf.SampleRate,
		StartMs:    start.Milliseconds(),
	})
}

func (ch *Channel) handleTranscript(role transcript.Role, text string) {
	ch.transcript.Append(role, text)
	ch.metrics.RecordTranscriptEntry(string(role))
	ch.conn.Send(&gateway.ServerEvent{
		Type: gateway.EventTranscript,
		Role: string(role),
		Text: text,
	})
}

func (ch *Channel) handleClosed(err error) {
	// The upstream can drop the connection before newChannel finishes
	// wiring; teardown must not observe a half-built channel.
	<-ch.ready
	ch.finish(err)
}

// Stop tears the channel down from the local side.
func (ch *Channel) Stop() {
	ch.session.Close()
	ch.finish(nil)
}

// finish runs the teardown sequence exactly once: capture stops first so no
// further frames reach a dying session, then the upstream session, then
// pending playback is silenced rather than drained.
func (ch *Channel) finish(err error) {
	ch.endOnce.Do(func() {
		ch.ended.Store(true)
		ch.framer.Close()
		ch.session.Close()

		silenced := ch.scheduler.Stop()
		ch.metrics.RecordChunksSilenced(silenced)

		ch.transcript.Append(transcript.RoleSystem, "session ended")

		if err != nil {
			ch.conn.Send(gateway.ErrorEvent("transport_error", err.Error()))
			ch.conn.Send(gateway.StateEvent(realtime.StateErrored.String()))
		} else {
			ch.conn.Send(gateway.StateEvent(realtime.StateClosed.String()))
		}

		duration := time.Since(ch.startedAt)
		ch.metrics.RecordSessionEnded(duration.Seconds(), err != nil)
		ch.log.Info("voice channel ended",
			"duration", duration,
			"silenced_chunks", silenced,
			"errored", err != nil,
		)

		if ch.onEnd != nil {
			ch.onEnd(ch)
		}
	})
}

// Ended reports whether teardown has started.
func (ch *Channel) Ended() bool {
	return ch.ended.Load()
}

// Transcript returns a snapshot of the channel's conversation log.
func (ch *Channel) Transcript() []transcript.Entry {
	return ch.transcript.Entries()
}
