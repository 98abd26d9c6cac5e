package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pages           *prom.CounterVec
	stageDuration   *prom.HistogramVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	previewRequests *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "crumbtrail",
			Name:      "pages_total",
			Help:      "Pages processed during injection by outcome",
		}, []string{"outcome"}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "crumbtrail",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "crumbtrail",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "crumbtrail",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		previewRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "crumbtrail",
			Name:      "preview_pages_total",
			Help:      "HTML pages served by the preview server by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.pages, pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.previewRequests)
	return pr
}

func (p *PrometheusRecorder) IncPage(outcome PageOutcome) {
	if p == nil {
		return
	}
	p.pages.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncPreviewRequest(outcome PageOutcome) {
	if p == nil {
		return
	}
	p.previewRequests.WithLabelValues(string(outcome)).Inc()
}
