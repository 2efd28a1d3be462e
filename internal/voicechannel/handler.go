package voicechannel

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolpulse/backend/internal/transcript"
)

type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/voice/status", h.GetStatus)
	g.GET("/voice/transcript", h.GetTranscript)
}

type StatusResponse struct {
	Active bool `json:"active"`
}

type TranscriptResponse struct {
	Entries []transcript.Entry `json:"entries"`
}

// GetStatus godoc
// @Summary Report whether a voice session is active
// @Tags voice
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /voice/status [get]
func (h *Handler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Active: h.manager.Active()})
}

// GetTranscript godoc
// @Summary Get the transcript of the current or most recent voice session
// @Tags voice
// @Produce json
// @Success 200 {object} TranscriptResponse
// @Router /voice/transcript [get]
func (h *Handler) GetTranscript(c echo.Context) error {
	return c.JSON(http.StatusOK, TranscriptResponse{Entries: h.manager.Transcript()})
}
