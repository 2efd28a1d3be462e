package feedback

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/schoolpulse/backend/internal/metrics"
)

func newTestServer() (*echo.Echo, *Store) {
	store := NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(store, metrics.NewMetrics(prometheus.NewRegistry()), logger)
	e := echo.New()
	h.RegisterRoutes(e.Group("/v1"))
	return e, store
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Create(t *testing.T) {
	e, store := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/feedback",
		`{"name":"Dana","message":"the playground needs lighting"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var f Feedback
	if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Name != "Dana" || f.Message != "the playground needs lighting" {
		t.Errorf("feedback = %+v", f)
	}
	if !strings.HasPrefix(f.ID, "fbk_") {
		t.Errorf("ID = %q, want fbk_ prefix", f.ID)
	}
	if store.Count() != 1 {
		t.Errorf("store count = %d", store.Count())
	}
}

func TestHandler_CreateAnonymousDefault(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/feedback", `{"message":"more crossing guards please"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	var f Feedback
	if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Name != "Anonymous" {
		t.Errorf("name = %q, want Anonymous", f.Name)
	}
}

func TestHandler_CreateRequiresMessage(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/feedback", `{"name":"Sam","message":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_ListNewestFirst(t *testing.T) {
	e, store := newTestServer()

	store.Create(&Feedback{Name: "A", Message: "first"})
	store.Create(&Feedback{Name: "B", Message: "second"})

	rec := doJSON(e, http.MethodGet, "/v1/feedback", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var list ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if list.Total != 2 || list.Feedback[0].Message != "second" {
		t.Errorf("list = %+v", list)
	}
}
