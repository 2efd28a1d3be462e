package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/schoolpulse/backend/internal/insight"
	"github.com/schoolpulse/backend/internal/metrics"
	"github.com/schoolpulse/backend/internal/realtime"
	"github.com/schoolpulse/backend/internal/voicechannel"
)

func ProvideRealtimeConfig(cfg *Config) realtime.Config {
	return realtime.Config{
		APIKey:       cfg.GeminiAPIKey,
		Model:        cfg.LiveModel,
		BaseURL:      cfg.LiveBaseURL,
		Voice:        cfg.LiveVoice,
		Instructions: cfg.Instructions,
	}
}

func ProvideVoiceManager(rtCfg realtime.Config, m *metrics.Metrics, logger *slog.Logger) *voicechannel.Manager {
	return voicechannel.NewManager(voicechannel.ManagerConfig{
		Realtime: rtCfg,
		Metrics:  m,
		Log:      logger,
	})
}

func ProvideInsightClient(cfg *Config, m *metrics.Metrics, logger *slog.Logger) (*insight.Client, error) {
	return insight.NewClient(context.Background(), insight.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Metrics: m,
		Log:     logger,
	})
}

var VoiceModule = fx.Options(
	fx.Provide(
		ProvideRealtimeConfig,
		ProvideVoiceManager,
		ProvideInsightClient,
	),
)
