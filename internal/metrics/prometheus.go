// Package metrics exposes Prometheus instrumentation for the voice pipeline
// and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the service.
type Metrics struct {
	// Voice session metrics
	SessionsStarted  prometheus.Counter
	SessionsRejected prometheus.Counter
	SessionsErrored  prometheus.Counter
	SessionDuration  prometheus.Histogram
	ActiveSessions   prometheus.Gauge

	// Audio pipeline metrics
	FramesSent      prometheus.Counter
	FramesDropped   prometheus.Counter
	ChunksScheduled prometheus.Counter
	ChunksSilenced  prometheus.Counter
	ChunkDuration   prometheus.Histogram

	// Transcript metrics
	TranscriptEntries *prometheus.CounterVec

	// Report and feedback metrics
	ReportsCreated  prometheus.Counter
	FeedbackCreated prometheus.Counter

	// Insight metrics
	InsightRequests  prometheus.Counter
	InsightFallbacks prometheus.Counter
	InsightDuration  prometheus.Histogram
}

// NewMetrics creates all metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_voice_sessions_started_total",
			Help: "Total number of voice sessions started",
		}),
		SessionsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_voice_sessions_rejected_total",
			Help: "Total number of session starts rejected because one was already active",
		}),
		SessionsErrored: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_voice_sessions_errored_total",
			Help: "Total number of voice sessions ended by a transport error",
		}),
		SessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "schoolpulse_voice_session_duration_seconds",
			Help:    "Duration of voice sessions in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1 hour
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "schoolpulse_voice_active_sessions",
			Help: "Current number of active voice sessions",
		}),

		FramesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_audio_frames_sent_total",
			Help: "Total number of capture frames sent upstream",
		}),
		FramesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_audio_frames_dropped_total",
			Help: "Total number of capture frames dropped on send failure",
		}),
		ChunksScheduled: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_audio_chunks_scheduled_total",
			Help: "Total number of playback chunks scheduled",
		}),
		ChunksSilenced: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_audio_chunks_silenced_total",
			Help: "Total number of pending playback chunks silenced at teardown",
		}),
		ChunkDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "schoolpulse_audio_chunk_duration_seconds",
			Help:    "Duration of scheduled playback chunks",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		}),

		TranscriptEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "schoolpulse_transcript_entries_total",
			Help: "Total number of transcript fragments appended",
		}, []string{"role"}),

		ReportsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_reports_created_total",
			Help: "Total number of condition reports created",
		}),
		FeedbackCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_feedback_created_total",
			Help: "Total number of feedback entries created",
		}),

		InsightRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_insight_requests_total",
			Help: "Total number of strategic insight requests",
		}),
		InsightFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "schoolpulse_insight_fallbacks_total",
			Help: "Total number of insight requests answered with the fixed fallback",
		}),
		InsightDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "schoolpulse_insight_duration_seconds",
			Help:    "Duration of insight generation calls",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),
	}
}

func (m *Metrics) RecordSessionStarted() {
	m.SessionsStarted.Inc()
	m.ActiveSessions.Inc()
}

func (m *Metrics) RecordSessionEnded(durationSeconds float64, errored bool) {
	m.ActiveSessions.Dec()
	m.SessionDuration.Observe(durationSeconds)
	if errored {
		m.SessionsErrored.Inc()
	}
}

func (m *Metrics) RecordSessionRejected() {
	m.SessionsRejected.Inc()
}

func (m *Metrics) RecordFrameSent() {
	m.FramesSent.Inc()
}

func (m *Metrics) RecordFrameDropped() {
	m.FramesDropped.Inc()
}

func (m *Metrics) RecordChunkScheduled(durationSeconds float64) {
	m.ChunksScheduled.Inc()
	m.ChunkDuration.Observe(durationSeconds)
}

func (m *Metrics) RecordChunksSilenced(count int) {
	m.ChunksSilenced.Add(float64(count))
}

func (m *Metrics) RecordTranscriptEntry(role string) {
	m.TranscriptEntries.WithLabelValues(role).Inc()
}

func (m *Metrics) RecordReportCreated() {
	m.ReportsCreated.Inc()
}

func (m *Metrics) RecordFeedbackCreated() {
	m.FeedbackCreated.Inc()
}

func (m *Metrics) RecordInsightRequest(durationSeconds float64, fallback bool) {
	m.InsightRequests.Inc()
	m.InsightDuration.Observe(durationSeconds)
	if fallback {
		m.InsightFallbacks.Inc()
	}
}
