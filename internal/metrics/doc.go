// Package metrics provides observability hooks for crumbtrail.
//
// Components receive a Recorder and default to NoopRecorder, so no nil checks
// are needed at call sites. The preview server swaps in a PrometheusRecorder
// when metrics are enabled and exposes it through HTTPHandler.
package metrics
