package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer() *echo.Echo {
	sessions := NewSessionManager([]byte("test-hmac-key"), false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(Credentials{Username: "admin", Password: "admin123"}, sessions, logger)
	mw := NewMiddleware(sessions)

	e := echo.New()
	v1 := e.Group("/v1")
	h.RegisterRoutes(v1)
	v1.GET("/auth/me", h.Me, mw.Authenticate)
	v1.GET("/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c))
	}, mw.Authenticate)
	return e
}

func postLogin(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pulse_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogin_ValidCredentials(t *testing.T) {
	e := newTestServer()
	rec := postLogin(e, `{"username":"admin","password":"admin123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Username != "admin" {
		t.Errorf("username = %q", resp.Username)
	}
	sessionCookie(t, rec)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"admin","password":"wrong"}`},
		{"wrong username", `{"username":"root","password":"admin123"}`},
		{"empty", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(e, tt.body)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			for _, c := range rec.Result().Cookies() {
				if c.Name == "pulse_session" && c.Value != "" {
					t.Error("session cookie must not be set on failed login")
				}
			}
		})
	}
}

func TestMiddleware_GatesWithoutCookie(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddleware_AcceptsValidCookie(t *testing.T) {
	e := newTestServer()

	login := postLogin(e, `{"username":"admin","password":"admin123"}`)
	cookie := sessionCookie(t, login)

	req := httptest.NewRequest(http.MethodGet, "/v1/protected", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "admin" {
		t.Errorf("current user = %q", rec.Body.String())
	}
}

func TestMiddleware_RejectsTamperedCookie(t *testing.T) {
	e := newTestServer()

	login := postLogin(e, `{"username":"admin","password":"admin123"}`)
	cookie := sessionCookie(t, login)
	cookie.Value = cookie.Value[:len(cookie.Value)-2] + "xx"

	req := httptest.NewRequest(http.MethodGet, "/v1/protected", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionManager_SignVerifyRoundTrip(t *testing.T) {
	s := NewSessionManager([]byte("key"), false)

	signed := s.SignValue("admin")
	got, err := s.VerifyValue(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != "admin" {
		t.Errorf("payload = %q", got)
	}

	other := NewSessionManager([]byte("different-key"), false)
	if _, err := other.VerifyValue(signed); err == nil {
		t.Error("verification with the wrong key must fail")
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pulse_session" && c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Error("logout should expire the session cookie")
	}
}
