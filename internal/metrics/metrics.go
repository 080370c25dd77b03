package metrics

import (
	"time"

	"github.com/trailhead-labs/funnelcast/internal/config"
	"github.com/trailhead-labs/funnelcast/internal/metrics/dogstatsd"
	"github.com/trailhead-labs/funnelcast/internal/metrics/metricsTypes"
	"go.uber.org/zap"
)

// MetricsSink fans metrics out to the configured clients. With no clients
// configured every call is a no-op, so callers never need to nil-check.
type MetricsSink struct {
	clients []metricsTypes.IMetricsClient
	config  *MetricsSinkConfig
}

type MetricsSinkConfig struct {
	DefaultLabels []metricsTypes.MetricsLabel
}

func NewMetricsSink(cfg *MetricsSinkConfig, clients []metricsTypes.IMetricsClient) (*MetricsSink, error) {
	if cfg.DefaultLabels == nil {
		cfg.DefaultLabels = []metricsTypes.MetricsLabel{}
	}
	return &MetricsSink{
		clients: clients,
		config:  cfg,
	}, nil
}

// NewMetricsSinkFromConfig builds a sink with a dogstatsd client when statsd
// is enabled, otherwise a sink with no clients.
func NewMetricsSinkFromConfig(cfg *config.Config, l *zap.Logger) (*MetricsSink, error) {
	clients := make([]metricsTypes.IMetricsClient, 0)
	if cfg.StatsdConfig.Enabled {
		client, err := dogstatsd.NewDogStatsdMetricsClient(cfg.StatsdConfig.Url, cfg.StatsdConfig.SampleRate, l)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return NewMetricsSink(&MetricsSinkConfig{}, clients)
}

func mergeLabels(labels []metricsTypes.MetricsLabel, defaultLabels []metricsTypes.MetricsLabel) []metricsTypes.MetricsLabel {
	if labels == nil {
		return defaultLabels
	}
	mergedLabels := make([]metricsTypes.MetricsLabel, 0)
	mergedLabels = append(mergedLabels, defaultLabels...)
	mergedLabels = append(mergedLabels, labels...)
	return mergedLabels
}

func (ms *MetricsSink) Incr(name string, labels []metricsTypes.MetricsLabel, value float64) error {
	mergedLabels := mergeLabels(labels, ms.config.DefaultLabels)
	for _, client := range ms.clients {
		if err := client.Incr(name, mergedLabels, value); err != nil {
			return err
		}
	}
	return nil
}

func (ms *MetricsSink) Gauge(name string, value float64, labels []metricsTypes.MetricsLabel) error {
	mergedLabels := mergeLabels(labels, ms.config.DefaultLabels)
	for _, client := range ms.clients {
		if err := client.Gauge(name, value, mergedLabels); err != nil {
			return err
		}
	}
	return nil
}

func (ms *MetricsSink) Timing(name string, value time.Duration, labels []metricsTypes.MetricsLabel) error {
	mergedLabels := mergeLabels(labels, ms.config.DefaultLabels)
	for _, client := range ms.clients {
		if err := client.Timing(name, value, mergedLabels); err != nil {
			return err
		}
	}
	return nil
}
