package report

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
	g.POST("/reports", h.Create)
	g.GET("/reports", h.List)
	g.GET("/reports/:id", h.Get)
}

type CreateRequest struct {
	SchoolName string   `json:"schoolName"`
	Location   string   `json:"location"`
	Condition  string   `json:"condition"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type ListResponse struct {
	Reports []*Report `json:"reports"`
	Total   int       `json:"total"`
}

// Create godoc
// @Summary Submit a school condition report
// @Tags reports
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Report fields"
// @Success 201 {object} Report
// @Failure 400 {object} shared.APIError
// @Router /reports [post]
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	req.SchoolName = strings.TrimSpace(req.SchoolName)
	req.Location = strings.TrimSpace(req.Location)
	req.Condition = strings.TrimSpace(req.Condition)
	if req.SchoolName == "" || req.Condition == "" {
		return shared.BadRequest("missing_fields", "schoolName and condition are required")
	}

	r := h.store.Create(&Report{
		SchoolName: req.SchoolName,
		Location:   req.Location,
		Condition:  req.Condition,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})

	h.metrics.RecordReportCreated()
	h.logger.Info("report created", "report_id", r.ID, "school", r.SchoolName)
	return c.JSON(http.StatusCreated, r)
}

// List godoc
// @Summary List all reports, newest first
// @Tags reports
// @Produce json
// @Success 200 {object} ListResponse
// @Router /reports [get]
func (h *Handler) List(c echo.Context) error {
	reports := h.store.List()
	return c.JSON(http.StatusOK, ListResponse{Reports: reports, Total: len(reports)})
}

// Get godoc
// @Summary Get one report by ID
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} Report
// @Failure 404 {object} shared.APIError
// @Router /reports/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	r, err := h.store.GetByID(c.Param("id"))
	if err != nil {
		return shared.NotFound("report_not_found", "report not found")
	}
	return c.JSON(http.StatusOK, r)
}
