// Package health exposes liveness and readiness probes plus basic runtime
// stats. There is no external storage to check; readiness reports on the
// process itself and the voice subsystem.
package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

type RuntimeStats struct {
	Goroutines         int    `json:"goroutines"`
	MemoryAllocMB      uint64 `json:"memory_alloc_mb"`
	MemoryTotalAllocMB uint64 `json:"memory_total_alloc_mb"`
	MemorySysMB        uint64 `json:"memory_sys_mb"`
	NumGC              uint32 `json:"num_gc"`
}

type DataStats struct {
	Reports       int  `json:"reports"`
	Feedback      int  `json:"feedback"`
	VoiceActive   bool `json:"voice_active"`
}

type HealthResponse struct {
	Status        string       `json:"status"`
	Timestamp     time.Time    `json:"timestamp"`
	Version       string       `json:"version"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Data          DataStats    `json:"data"`
	Runtime       RuntimeStats `json:"runtime"`
}

// Counter reports a store's current size.
type Counter interface {
	Count() int
}

// VoiceStatus reports whether a voice channel is running.
type VoiceStatus interface {
	Active() bool
}

type Handler struct {
	reports   Counter
	feedback  Counter
	voice     VoiceStatus
	version   string
	startTime time.Time
}

func NewHandler(reports, feedback Counter, voice VoiceStatus, version string) *Handler {
	return &Handler{
		reports:   reports,
		feedback:  feedback,
		voice:     voice,
		version:   version,
		startTime: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Liveness)
	e.GET("/health/ready", h.Readiness)
}

func (h *Handler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *Handler) Readiness(c echo.Context) error {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Data: DataStats{
			Reports:     h.reports.Count(),
			Feedback:    h.feedback.Count(),
			VoiceActive: h.voice.Active(),
		},
		Runtime: RuntimeStats{
			Goroutines:         runtime.NumGoroutine(),
			MemoryAllocMB:      memStats.Alloc / 1024 / 1024,
			MemoryTotalAllocMB: memStats.TotalAlloc / 1024 / 1024,
			MemorySysMB:        memStats.Sys / 1024 / 1024,
			NumGC:              memStats.NumGC,
		},
	})
}
