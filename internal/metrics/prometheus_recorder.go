package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	loadDuration   prom.Histogram
	stageResults   *prom.CounterVec
	loadOutcome    *prom.CounterVec
	pluginsLoaded  *prom.CounterVec
	artifactWrites *prom.CounterVec
	routes         prom.Gauge
	chunks         prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual load stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "load_duration_seconds",
			Help:      "Total load duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		loadOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "load_outcomes_total",
			Help:      "Load outcomes by final status",
		}, []string{"result"}),
		pluginsLoaded: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "plugins_loaded_total",
			Help:      "Plugin instances created, by plugin name",
		}, []string{"plugin"}),
		artifactWrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "artifact_writes_total",
			Help:      "Generated artifact writes by result",
		}, []string{"result"}),
		routes: prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitebuilder",
			Name:      "routes",
			Help:      "Number of leaf routes produced by the last load",
		}),
		chunks: prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitebuilder",
			Name:      "chunks",
			Help:      "Number of chunk registry entries produced by the last load",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.loadDuration, pr.stageResults, pr.loadOutcome,
		pr.pluginsLoaded, pr.artifactWrites, pr.routes, pr.chunks)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncLoadOutcome(result ResultLabel) {
	if p == nil {
		return
	}
	p.loadOutcome.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncPluginLoaded(plugin string) {
	if p == nil {
		return
	}
	p.pluginsLoaded.WithLabelValues(plugin).Inc()
}

func (p *PrometheusRecorder) IncArtifactWrite(result ArtifactResult) {
	if p == nil {
		return
	}
	p.artifactWrites.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetRouteCount(n int) {
	if p == nil {
		return
	}
	p.routes.Set(float64(n))
}

func (p *PrometheusRecorder) SetChunkCount(n int) {
	if p == nil {
		return
	}
	p.chunks.Set(float64(n))
}

// WriteTextfile dumps the registry in Prometheus text format (node_exporter textfile style).
func WriteTextfile(path string, reg *prom.Registry) error {
	return prom.WriteToTextfile(path, reg)
}
