// Package metrics собирает счётчики одного запуска сборки новостей и пишет их
// в формате textfile для node_exporter.
package metrics

import (
	"time"

	"news_builder/internal/fetcher"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	registry *prometheus.Registry

	feedItems      *prometheus.GaugeVec
	feedKept       *prometheus.GaugeVec
	fallbacks      prometheus.Counter
	fetchErrors    *prometheus.CounterVec
	publishedItems prometheus.Gauge
	lastSuccess    prometheus.Gauge
	runDuration    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		feedItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "newsbuild_feed_items_found",
			Help: "Item blocks found in the feed document.",
		}, []string{"category", "via"}),
		feedKept: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "newsbuild_feed_items_kept",
			Help: "Items of the feed that passed normalization.",
		}, []string{"category"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsbuild_mirror_fallbacks_total",
			Help: "Feeds that were fetched through the mirror.",
		}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsbuild_fetch_errors_total",
			Help: "Feeds whose fetch failed.",
		}, []string{"category"}),
		publishedItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "newsbuild_published_items",
			Help: "Items written to the output document.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "newsbuild_last_success_timestamp_seconds",
			Help: "Unix time of the last successful publish.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "newsbuild_run_duration_seconds",
			Help: "Wall time of the whole run.",
		}),
	}
	m.registry.MustRegister(
		m.feedItems,
		m.feedKept,
		m.fallbacks,
		m.fetchErrors,
		m.publishedItems,
		m.lastSuccess,
		m.runDuration,
	)
	return m
}

// ObserveFeed фиксирует итог одной ленты. Нулевой *Metrics игнорирует все вызовы.
func (m *Metrics) ObserveFeed(category, via string, found, kept int) {
	if m == nil {
		return
	}
	m.feedItems.WithLabelValues(category, via).Set(float64(found))
	m.feedKept.WithLabelValues(category).Set(float64(kept))
	if via == fetcher.ViaMirror {
		m.fallbacks.Inc()
	}
}

func (m *Metrics) ObserveFetchError(category string) {
	if m == nil {
		return
	}
	m.fetchErrors.WithLabelValues(category).Inc()
}

func (m *Metrics) ObservePublish(items int, at time.Time) {
	if m == nil {
		return
	}
	m.publishedItems.Set(float64(items))
	m.lastSuccess.Set(float64(at.Unix()))
}

func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Set(d.Seconds())
}

// Registry возвращает реестр метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile атомарно записывает все метрики в файл path. Пустой path ничего не делает.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
