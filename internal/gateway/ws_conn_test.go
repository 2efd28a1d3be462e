package gateway

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func float32Frame(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// startConnServer runs a server-side ClientConn with both pumps and hands the
// conn to ready.
func startConnServer(t *testing.T, ready chan<- *ClientConn) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewClientConn(ws, testLogger())
		ready <- conn

		ctx := r.Context()
		go conn.writePump(ctx)
		conn.readPump(ctx)
	}))
}

func TestDecodeSamples(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []float32
		ok   bool
	}{
		{"empty", nil, nil, false},
		{"misaligned", []byte{1, 2, 3}, nil, false},
		{"one sample", float32Frame([]float32{0.5}), []float32{0.5}, true},
		{"several", float32Frame([]float32{-1, 0, 0.25}), []float32{-1, 0, 0.25}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeSamples(tt.data)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClientConn_BinaryFramesBecomeSamples(t *testing.T) {
	ready := make(chan *ClientConn, 1)
	server := startConnServer(t, ready)
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	conn := <-ready
	samples := []float32{0.1, -0.2, 0.3, 1.0}
	if err := ws.WriteMessage(websocket.BinaryMessage, float32Frame(samples)); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-conn.Frames():
		if len(got) != len(samples) {
			t.Fatalf("got %d samples, want %d", len(got), len(samples))
		}
		for i := range got {
			if got[i] != samples[i] {
				t.Errorf("sample %d = %v, want %v", i, got[i], samples[i])
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("frame never delivered")
	}
}

func TestClientConn_MalformedBinaryFrameDiscarded(t *testing.T) {
	ready := make(chan *ClientConn, 1)
	server := startConnServer(t, ready)
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	conn := <-ready
	if err := ws.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	good := []float32{0.5}
	if err := ws.WriteMessage(websocket.BinaryMessage, float32Frame(good)); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Only the well-formed frame arrives; the connection survives.
	select {
	case got := <-conn.Frames():
		if len(got) != 1 || got[0] != 0.5 {
			t.Errorf("unexpected frame %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("valid frame never delivered")
	}
}

func TestClientConn_TextFramesBecomeCommands(t *testing.T) {
	ready := make(chan *ClientConn, 1)
	server := startConnServer(t, ready)
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	conn := <-ready
	if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"start"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case cmd := <-conn.Commands():
		if cmd.Type != CommandStart {
			t.Errorf("command type = %q, want start", cmd.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command never delivered")
	}
}

func TestClientConn_SendDeliversEvent(t *testing.T) {
	ready := make(chan *ClientConn, 1)
	server := startConnServer(t, ready)
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	conn := <-ready
	conn.Send(StateEvent("open"))

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev ServerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Type != EventState || ev.State != "open" {
		t.Errorf("event = %+v", ev)
	}
}

func TestClientConn_SendAfterCloseIsNoop(t *testing.T) {
	ready := make(chan *ClientConn, 1)
	server := startConnServer(t, ready)
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	conn := <-ready
	conn.Close()
	conn.Send(StateEvent("open")) // must not panic on closed send channel

	if err := conn.Close(); err != nil {
		t.Errorf("second Close should not error: %v", err)
	}

	select {
	case <-conn.Done():
	default:
		t.Error("Done should be closed after Close")
	}
}

func TestClientConn_ConcurrentSendAndClose(t *testing.T) {
	ready := make(chan *ClientConn, 1)
	server := startConnServer(t, ready)
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	conn := <-ready

	// Senders racing Close must never panic on the closed send channel.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				conn.Send(StateEvent("open"))
			}
		}()
	}
	conn.Close()
	wg.Wait()
}

func TestClientConn_SendBufferFullDrops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		// No write pump: the send buffer is never drained.
		conn := NewClientConn(ws, testLogger())
		for i := 0; i < 300; i++ {
			conn.Send(StateEvent("open")) // must drop, not block
		}
		time.Sleep(50 * time.Millisecond)
	}))
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()
	time.Sleep(200 * time.Millisecond)
}

type recordingAttacher struct {
	attached chan *ClientConn
}

func (a *recordingAttacher) Attach(ctx context.Context, conn *ClientConn) {
	a.attached <- conn
	<-conn.Done()
}

func TestVoiceHandler_AttachesConnection(t *testing.T) {
	attacher := &recordingAttacher{attached: make(chan *ClientConn, 1)}
	h := NewVoiceHandler(attacher, testLogger())

	e := echo.New()
	e.GET("/v1/voice/ws", h.handleWebSocket)
	server := httptest.NewServer(e)
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:]+"/v1/voice/ws", nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	select {
	case <-attacher.attached:
	case <-time.After(2 * time.Second):
		t.Fatal("attacher never received the connection")
	}
}
