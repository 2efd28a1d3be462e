package bootstrap

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"

	_ "github.com/schoolpulse/backend/docs"
	"github.com/schoolpulse/backend/internal/auth"
	"github.com/schoolpulse/backend/internal/feedback"
	"github.com/schoolpulse/backend/internal/gateway"
	"github.com/schoolpulse/backend/internal/health"
	"github.com/schoolpulse/backend/internal/insight"
	"github.com/schoolpulse/backend/internal/metrics"
	"github.com/schoolpulse/backend/internal/report"
	"github.com/schoolpulse/backend/internal/voicechannel"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideSessionManager(cfg *Config) *auth.SessionManager {
	return auth.NewSessionManager(cfg.HMACKey, cfg.CookieSecure)
}

func ProvideAuthMiddleware(sessions *auth.SessionManager) *auth.Middleware {
	return auth.NewMiddleware(sessions)
}

func ProvideAuthHandler(cfg *Config, sessions *auth.SessionManager, logger *slog.Logger) *auth.Handler {
	creds := auth.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	return auth.NewHandler(creds, sessions, logger.With("handler", "auth"))
}

func ProvideReportHandler(store *report.Store, m *metrics.Metrics, logger *slog.Logger) *report.Handler {
	return report.NewHandler(store, m, logger.With("handler", "report"))
}

func ProvideFeedbackHandler(store *feedback.Store, m *metrics.Metrics, logger *slog.Logger) *feedback.Handler {
	return feedback.NewHandler(store, m, logger.With("handler", "feedback"))
}

func ProvideInsightHandler(client *insight.Client, store *report.Store, logger *slog.Logger) *insight.Handler {
	return insight.NewHandler(client, store, logger.With("handler", "insight"))
}

func ProvideVoiceGatewayHandler(manager *voicechannel.Manager, logger *slog.Logger) *gateway.VoiceHandler {
	return gateway.NewVoiceHandler(manager, logger)
}

func ProvideVoiceHandler(manager *voicechannel.Manager, logger *slog.Logger) *voicechannel.Handler {
	return voicechannel.NewHandler(manager, logger.With("handler", "voice"))
}

func ProvideHealthHandler(reports *report.Store, fb *feedback.Store, manager *voicechannel.Manager, cfg *Config) *health.Handler {
	return health.NewHandler(reports, fb, manager, cfg.Version)
}

type HandlerParams struct {
	fx.In

	AuthHandler         *auth.Handler
	AuthMiddleware      *auth.Middleware
	ReportHandler       *report.Handler
	FeedbackHandler     *feedback.Handler
	InsightHandler      *insight.Handler
	VoiceGatewayHandler *gateway.VoiceHandler
	VoiceHandler        *voicechannel.Handler
	HealthHandler       *health.Handler
	Registry            *prometheus.Registry
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")
	params.AuthHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(params.AuthMiddleware.Authenticate)
	protected.GET("/auth/me", params.AuthHandler.Me)
	params.ReportHandler.RegisterRoutes(protected)
	params.FeedbackHandler.RegisterRoutes(protected)
	params.InsightHandler.RegisterRoutes(protected)
	params.VoiceHandler.RegisterRoutes(protected)
	params.VoiceGatewayHandler.RegisterRoutes(protected)

	params.HealthHandler.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideSessionManager,
		ProvideAuthMiddleware,
		ProvideAuthHandler,
		ProvideReportHandler,
		ProvideFeedbackHandler,
		ProvideInsightHandler,
		ProvideVoiceGatewayHandler,
		ProvideVoiceHandler,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)
