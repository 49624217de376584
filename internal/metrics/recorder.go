package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// ArtifactResult enumerates outcomes of a single generated artifact write.
type ArtifactResult string

const (
	ArtifactWritten   ArtifactResult = "written"
	ArtifactUnchanged ArtifactResult = "unchanged"
	ArtifactFailed    ArtifactResult = "failed"
)

// Recorder defines observability hooks for load and stage metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveLoadDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncLoadOutcome(result ResultLabel)
	IncPluginLoaded(plugin string)
	IncArtifactWrite(result ArtifactResult)
	SetRouteCount(n int)
	SetChunkCount(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveLoadDuration(time.Duration)          {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncLoadOutcome(ResultLabel)                 {}
func (NoopRecorder) IncPluginLoaded(string)                     {}
func (NoopRecorder) IncArtifactWrite(ArtifactResult)            {}
func (NoopRecorder) SetRouteCount(int)                          {}
func (NoopRecorder) SetChunkCount(int)                          {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
