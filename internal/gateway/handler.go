package gateway

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// SessionAttacher drives the voice pipeline for one connection. Attach must
// return when the connection is done.
type SessionAttacher interface {
	Attach(ctx context.Context, conn *ClientConn)
}

type VoiceHandler struct {
	attacher SessionAttacher
	logger   *slog.Logger
}

func NewVoiceHandler(attacher SessionAttacher, logger *slog.Logger) *VoiceHandler {
	return &VoiceHandler{
		attacher: attacher,
		logger:   logger.With("component", "voice_gateway"),
	}
}

func (h *VoiceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/voice/ws", h.handleWebSocket)
}

// handleWebSocket upgrades the request and runs the connection until either
// side hangs up. The attacher owns session lifecycle; this handler only owns
// the socket pumps.
func (h *VoiceHandler) handleWebSocket(c echo.Context) error {
	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return err
	}

	conn := NewClientConn(ws, h.logger)
	h.logger.Info("dashboard connected")

	ctx := c.Request().Context()
	go conn.writePump(ctx)

	attached := make(chan struct{})
	go func() {
		defer close(attached)
		h.attacher.Attach(ctx, conn)
	}()

	conn.readPump(ctx)
	<-attached

	h.logger.Info("dashboard disconnected")
	return nil
}
