// Package realtime owns the lifecycle of one bidirectional live session with
// the remote voice service: connect, send frame, receive events, close.
//
// A session moves Connecting -> Open -> Closed|Errored. Audio may only be
// sent while Open; the Open transition fires exactly when the remote side
// acknowledges setup, which is the signal upstream code uses to start the
// capture framer. The session enforces no singleton rule itself; that guard
// lives at the voice channel boundary.
package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/schoolpulse/backend/internal/audio"
)

type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosed
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Events receives typed inbound messages. Handlers run on the session's
// receive goroutine and must not block.
type Events struct {
	// OnOpen fires once, when the remote service acknowledges setup.
	OnOpen func()
	// OnAudio receives a decoded 24 kHz mono PCM16 payload.
	OnAudio func(pcm []byte)
	// OnUserTranscript receives an input-transcription fragment.
	OnUserTranscript func(text string)
	// OnAssistantTranscript receives an output-transcription fragment.
	OnAssistantTranscript func(text string)
	// OnClosed fires once when the session reaches a terminal state.
	// err is nil for a clean close and non-nil when the transport errored.
	OnClosed func(err error)
}

type Session struct {
	conn *websocket.Conn
	cfg  Config
	ev   Events
	log  *slog.Logger

	state atomic.Int32

	ctx        context.Context
	cancel     context.CancelFunc
	closed     atomic.Bool
	terminated atomic.Bool
}

// Connect dials the live endpoint and sends the setup message. The returned
// session is Connecting; it becomes Open when setupComplete arrives.
func Connect(ctx context.Context, cfg Config, ev Events, log *slog.Logger) (*Session, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}

	wsURL := fmt.Sprintf(
		"%s/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent?key=%s",
		cfg.BaseURL, cfg.APIKey,
	)

	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{
			"Content-Type": []string{"application/json"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("realtime: dial: %w", err)
	}
	// Base64 audio frames exceed the default read limit.
	conn.SetReadLimit(1 << 21)

	sessCtx, cancel := context.WithCancel(context.Background())
	s := &Session{
		conn:   conn,
		cfg:    cfg,
		ev:     ev,
		log:    log,
		ctx:    sessCtx,
		cancel: cancel,
	}
	s.state.Store(int32(StateConnecting))

	if err := s.sendSetup(); err != nil {
		cancel()
		conn.Close(websocket.StatusInternalError, "setup failed")
		return nil, fmt.Errorf("realtime: setup: %w", err)
	}

	go s.receiveLoop()

	return s, nil
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) sendSetup() error {
	msg := setupMessage{
		Setup: setupConfig{
			Model: "models/" + s.cfg.Model,
			GenerationConfig: generationConfig{
				ResponseModalities: []string{"AUDIO"},
				SpeechConfig: &speechConfig{
					VoiceConfig: voiceConfig{
						PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: s.cfg.Voice},
					},
				},
			},
			InputAudioTranscription:  &struct{}{},
			OutputAudioTranscription: &struct{}{},
		},
	}
	if s.cfg.Instructions != "" {
		msg.Setup.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: s.cfg.Instructions}},
		}
	}
	return s.writeJSON(msg)
}

func (s *Session) writeJSON(v any) error {
	return wsjson.Write(s.ctx, s.conn, v)
}

// SendFrame ships one PCM16 capture frame. It fails when the session is not
// Open; callers treat that as a dropped frame, not a session fault.
func (s *Session) SendFrame(pcm []byte) error {
	if s.State() != StateOpen {
		return fmt.Errorf("realtime: session %s, frame dropped", s.State())
	}

	msg := realtimeInputMessage{
		RealtimeInput: realtimeInput{
			MediaChunks: []mediaChunk{
				{MIMEType: InputMIMEType, Data: audio.EncodeBase64(pcm)},
			},
		},
	}
	return s.writeJSON(msg)
}

func (s *Session) receiveLoop() {
	for {
		var msg serverMessage
		if err := wsjson.Read(s.ctx, s.conn, &msg); err != nil {
			if s.ctx.Err() != nil {
				// Local close already ran the terminal path.
				return
			}
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				s.terminate(StateClosed, nil)
			} else {
				s.terminate(StateErrored, err)
			}
			return
		}
		s.dispatch(&msg)
	}
}

func (s *Session) dispatch(msg *serverMessage) {
	if msg.SetupComplete != nil {
		if s.state.CompareAndSwap(int32(StateConnecting), int32(StateOpen)) {
			s.log.Info("live session open", "model", s.cfg.Model, "voice", s.cfg.Voice)
			if s.ev.OnOpen != nil {
				s.ev.OnOpen()
			}
		}
		return
	}

	if msg.Error != nil {
		s.log.Error("live session remote error", "code", msg.Error.Code, "message", msg.Error.Message)
		return
	}

	sc := msg.ServerContent
	if sc == nil {
		return
	}

	if sc.ModelTurn != nil && s.ev.OnAudio != nil {
		for _, p := range sc.ModelTurn.Parts {
			if p.InlineData == nil {
				continue
			}
			pcm, err := audio.DecodeBase64(p.InlineData.Data)
			if err != nil {
				// Fatal to this chunk only, never to the session.
				s.log.Warn("dropping undecodable audio chunk", "error", err)
				continue
			}
			if len(pcm) > 0 {
				s.ev.OnAudio(pcm)
			}
		}
	}

	if sc.InputTranscription != nil && sc.InputTranscription.Text != "" && s.ev.OnUserTranscript != nil {
		s.ev.OnUserTranscript(sc.InputTranscription.Text)
	}
	if sc.OutputTranscription != nil && sc.OutputTranscription.Text != "" && s.ev.OnAssistantTranscript != nil {
		s.ev.OnAssistantTranscript(sc.OutputTranscription.Text)
	}
}

// terminate moves the session to a terminal state and fires OnClosed once.
// OnClosed handlers commonly call Close; the flag makes the re-entrant call
// a no-op instead of a self-deadlock.
func (s *Session) terminate(final State, err error) {
	if !s.terminated.CompareAndSwap(false, true) {
		return
	}
	s.state.Store(int32(final))
	s.cancel()
	if err != nil {
		s.log.Error("live session failed", "error", err)
	}
	if s.ev.OnClosed != nil {
		s.ev.OnClosed(err)
	}
}

// Close ends the session from the local side. Safe from any state, from
// inside OnClosed, and idempotent. In-flight sends are not awaited.
func (s *Session) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		s.terminate(StateClosed, nil)
		s.conn.Close(websocket.StatusNormalClosure, "session closed")
	}
	return nil
}
