package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/schoolpulse/backend/internal/shared"
)

const userContextKey = "auth_user"

type Middleware struct {
	sessions *SessionManager
}

func NewMiddleware(sessions *SessionManager) *Middleware {
	return &Middleware{sessions: sessions}
}

// Authenticate rejects requests without a valid session cookie.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, err := m.sessions.Get(c)
		if err != nil {
			return shared.Unauthorized("not_logged_in", "login required")
		}
		c.Set(userContextKey, username)
		return next(c)
	}
}

// CurrentUser returns the username set by Authenticate, or "".
func CurrentUser(c echo.Context) string {
	if v, ok := c.Get(userContextKey).(string); ok {
		return v
	}
	return ""
}
