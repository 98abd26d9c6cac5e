package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncPage(PageInjected)
	pr.IncPage(PageInjected)
	pr.IncPage(PageSkipped)
	pr.ObserveStageDuration("inject", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildSuccess)
	pr.IncPreviewRequest(PageInjected)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
	for _, mf := range mfs {
		if mf.GetName() != "crumbtrail_pages_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetLabel()[0].GetValue() == string(PageInjected) && m.GetCounter().GetValue() != 2 {
				t.Fatalf("injected pages = %v, want 2", m.GetCounter().GetValue())
			}
		}
	}
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncBuildOutcome(BuildFailed)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `crumbtrail_build_outcomes_total{outcome="failed"} 1`) {
		t.Fatalf("missing build outcome in scrape:\n%s", body)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncPage(PageFailed)
	pr.ObserveBuildDuration(time.Second)
	var _ Recorder = NoopRecorder{}
	var _ Recorder = pr
}
