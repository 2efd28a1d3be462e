package voicechannel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/schoolpulse/backend/internal/gateway"
	"github.com/schoolpulse/backend/internal/metrics"
	"github.com/schoolpulse/backend/internal/realtime"
	"github.com/schoolpulse/backend/internal/transcript"
)

// Manager enforces the single-session rule: at most one voice channel is
// active at a time, across all connections. A start command while a channel
// is connecting or open is answered with a notice and otherwise ignored.
type Manager struct {
	cfg     realtime.Config
	metrics *metrics.Metrics
	log     *slog.Logger

	mu       sync.Mutex
	active   *Channel
	starting bool
	last     *Channel
}

type ManagerConfig struct {
	Realtime realtime.Config
	Metrics  *metrics.Metrics
	Log      *slog.Logger
}

func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	return &Manager{
		cfg:     cfg.Realtime,
		metrics: cfg.Metrics,
		log:     cfg.Log.With("component", "voicechannel"),
	}
}

// Attach drives the voice pipeline for one dashboard connection. It returns
// when the connection or its request context ends; any channel this
// connection started is stopped on the way out.
func (m *Manager) Attach(ctx context.Context, conn *gateway.ClientConn) {
	var own *Channel
	defer func() {
		if own != nil {
			own.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-conn.Done():
			return

		case cmd := <-conn.Commands():
			switch cmd.Type {
			case gateway.CommandStart:
				if ch := m.start(ctx, conn); ch != nil {
					own = ch
				}
			case gateway.CommandStop:
				if own != nil {
					own.Stop()
					own = nil
				}
			default:
				conn.Send(gateway.NoticeEvent("unknown_command", "unrecognized command type"))
			}

		case samples := <-conn.Frames():
			if own != nil {
				own.PushSamples(samples)
			}
		}
	}
}

// start creates a channel for conn unless one is already active anywhere.
// The dial happens outside the lock so status and transcript reads never
// stall behind a slow connect; the starting flag holds the singleton slot
// in the meantime.
func (m *Manager) start(ctx context.Context, conn *gateway.ClientConn) *Channel {
	m.mu.Lock()
	if m.active != nil || m.starting {
		m.mu.Unlock()
		m.metrics.RecordSessionRejected()
		m.log.Info("start rejected, session already active")
		conn.Send(gateway.NoticeEvent("session_active", "a voice session is already active"))
		return nil
	}
	m.starting = true
	m.mu.Unlock()

	ch, err := newChannel(ctx, conn, m.cfg, m.metrics, m.log, m.channelEnded)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.starting = false
	if err != nil {
		m.log.Error("voice channel connect failed", "error", err)
		conn.Send(gateway.ErrorEvent("connect_failed", "could not reach the voice service"))
		conn.Send(gateway.StateEvent(realtime.StateErrored.String()))
		return nil
	}

	m.active = ch
	m.last = ch
	if ch.Ended() {
		// The channel can finish before we publish it; its channelEnded
		// callback then found nothing to clear.
		m.active = nil
	}
	return ch
}

func (m *Manager) channelEnded(ch *Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == ch {
		m.active = nil
	}
}

// Active reports whether a channel is currently running.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// Transcript returns the conversation log of the running channel, or of the
// most recently ended one when nothing is active.
func (m *Manager) Transcript() []transcript.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return []transcript.Entry{}
	}
	return m.last.Transcript()
}
