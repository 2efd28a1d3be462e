package bootstrap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/schoolpulse/backend/internal/feedback"
	"github.com/schoolpulse/backend/internal/metrics"
	"github.com/schoolpulse/backend/internal/report"
)

func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func ProvideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.NewMetrics(reg)
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideRegistry,
		ProvideMetrics,
		report.NewStore,
		feedback.NewStore,
	),
)
