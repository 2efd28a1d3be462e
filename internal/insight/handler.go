package insight

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolpulse/backend/internal/report"
	"github.com/schoolpulse/backend/internal/shared"
)

// Generator produces a brief from reports. Satisfied by *Client.
type Generator interface {
	Generate(ctx context.Context, reports []*report.Report) Insight
}

type Handler struct {
	generator Generator
	reports   *report.Store
	logger    *slog.Logger
}

func NewHandler(generator Generator, reports *report.Store, logger *slog.Logger) *Handler {
	return &Handler{generator: generator, reports: reports, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/insight", h.Generate)
}

// Generate godoc
// @Summary Generate a strategic brief from all collected reports
// @Tags insight
// @Produce json
// @Success 200 {object} Insight
// @Failure 400 {object} shared.APIError
// @Router /insight [post]
func (h *Handler) Generate(c echo.Context) error {
	reports := h.reports.List()
	if len(reports) == 0 {
		return shared.BadRequest("no_reports", "no reports to analyze")
	}

	ins := h.generator.Generate(c.Request().Context(), reports)
	h.logger.Info("insight generated", "reports", len(reports))
	return c.JSON(http.StatusOK, ins)
}
