package feedback

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/schoolpulse/backend/internal/metrics"
	"github.com/schoolpulse/backend/internal/shared"
)

type Handler struct {
	store   *Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewHandler(store *Store, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{store: store, metrics: m, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/feedback", h.Create)
	g.GET("/feedback", h.List)
}

type CreateRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ListResponse struct {
	Feedback []*Feedback `json:"feedback"`
	Total    int         `json:"total"`
}

// Create godoc
// @Summary Submit community feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Feedback fields"
// @Success 201 {object} Feedback
// @Failure 400 {object} shared.APIError
// @Router /feedback [post]
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return shared.BadRequest("missing_fields", "message is required")
	}
	if req.Name == "" {
		req.Name = "Anonymous"
	}

	f := h.store.Create(&Feedback{Name: req.Name, Message: req.Message})

	h.metrics.RecordFeedbackCreated()
	h.logger.Info("feedback created", "feedback_id", f.ID)
	return c.JSON(http.StatusCreated, f)
}

// List godoc
// @Summary List all feedback, newest first
// @Tags feedback
// @Produce json
// @Success 200 {object} ListResponse
// @Router /feedback [get]
func (h *Handler) List(c echo.Context) error {
	entries := h.store.List()
	return c.JSON(http.StatusOK, ListResponse{Feedback: entries, Total: len(entries)})
}
