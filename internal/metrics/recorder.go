package metrics

import "time"

// PageOutcome enumerates what happened to a single page.
type PageOutcome string

const (
	PageInjected         PageOutcome = "injected"
	PageSkipped          PageOutcome = "skipped"
	PageMissingContainer PageOutcome = "missing_container"
	PageFailed           PageOutcome = "failed"
)

// BuildOutcome enumerates final build states.
type BuildOutcome string

const (
	BuildSuccess  BuildOutcome = "success"
	BuildFailed   BuildOutcome = "failed"
	BuildCanceled BuildOutcome = "canceled"
)

// Recorder defines observability hooks for trail injection and site builds.
type Recorder interface {
	IncPage(outcome PageOutcome)
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	IncPreviewRequest(outcome PageOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncPage(PageOutcome)                        {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)               {}
func (NoopRecorder) IncPreviewRequest(PageOutcome)              {}
