package gateway

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ClientConn wraps one browser WebSocket. Inbound binary frames are decoded
// into float32 sample slices; inbound text frames into commands. Outbound
// events go through a buffered send channel drained by the write pump.
type ClientConn struct {
	ws     *websocket.Conn
	logger *slog.Logger

	send     chan *ServerEvent
	commands chan ClientCommand
	frames   chan []float32

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewClientConn(ws *websocket.Conn, logger *slog.Logger) *ClientConn {
	return &ClientConn{
		ws:       ws,
		logger:   logger,
		send:     make(chan *ServerEvent, 256),
		commands: make(chan ClientCommand, 16),
		frames:   make(chan []float32, 64),
		done:     make(chan struct{}),
	}
}

// Send queues an event for delivery. A full buffer drops the event rather
// than stalling the pipeline behind a slow browser. The lock is held across
// the send so Close cannot close the channel underneath it.
func (c *ClientConn) Send(ev *ServerEvent) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- ev:
	default:
		c.logger.Warn("send buffer full, dropping event", "type", ev.Type)
	}
}

func (c *ClientConn) Commands() <-chan ClientCommand {
	return c.commands
}

// Frames yields decoded capture sample slices in arrival order.
func (c *ClientConn) Frames() <-chan []float32 {
	return c.frames
}

func (c *ClientConn) Done() <-chan struct{} {
	return c.done
}

func (c *ClientConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	close(c.send)
	c.mu.Unlock()

	return c.ws.Close()
}

func (c *ClientConn) readPump(ctx context.Context) {
	defer func() {
		c.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		msgType, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket read error", "error", err)
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			samples, ok := decodeSamples(message)
			if !ok {
				c.logger.Warn("discarding malformed sample frame", "bytes", len(message))
				continue
			}
			select {
			case c.frames <- samples:
			case <-ctx.Done():
				return
			default:
				c.logger.Warn("frame buffer full, dropping capture frame")
			}

		case websocket.TextMessage:
			var cmd ClientCommand
			if err := json.Unmarshal(message, &cmd); err != nil {
				c.logger.Error("failed to unmarshal command", "error", err)
				continue
			}
			select {
			case c.commands <- cmd:
			case <-ctx.Done():
				return
			default:
				c.logger.Warn("command buffer full, dropping command", "type", cmd.Type)
			}
		}
	}
}

func (c *ClientConn) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				c.logger.Error("failed to marshal event", "error", err)
				continue
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// decodeSamples interprets a binary frame as little-endian float32 samples.
func decodeSamples(data []byte) ([]float32, bool) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, false
	}
	samples := make([]float32, len(data)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, true
}
