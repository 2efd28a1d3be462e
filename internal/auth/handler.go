package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolpulse/backend/internal/shared"
)

// Credentials is the single allowed login, set from config.
type Credentials struct {
	Username string
	Password string
}

type Handler struct {
	creds    Credentials
	sessions *SessionManager
	logger   *slog.Logger
}

func NewHandler(creds Credentials, sessions *SessionManager, logger *slog.Logger) *Handler {
	return &Handler{creds: creds, sessions: sessions, logger: logger}
}

// RegisterRoutes mounts the public auth endpoints; Me belongs behind the
// Authenticate middleware and is registered by the caller.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	Username string `json:"username"`
}

// Login godoc
// @Summary Log in to the dashboard
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 401 {object} shared.APIError
// @Router /auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.creds.Password)) == 1
	if !userOK || !passOK {
		h.logger.Info("login rejected", "username", req.Username)
		return shared.Unauthorized("bad_credentials", "invalid username or password")
	}

	h.sessions.Create(c, req.Username)
	h.logger.Info("login accepted", "username", req.Username)
	return c.JSON(http.StatusOK, UserResponse{Username: req.Username})
}

// Logout godoc
// @Summary Log out and clear the session cookie
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Get the logged-in user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} shared.APIError
// @Router /auth/me [get]
func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, UserResponse{Username: CurrentUser(c)})
}
