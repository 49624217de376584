// Package metrics provides observability hooks for sitebuilder load runs.
//
// The package follows the Null Object pattern: components hold a Recorder and
// default to NoopRecorder, so no nil checks are needed at call sites. The CLI
// swaps in a PrometheusRecorder when metrics output is requested:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	props, err := build.Load(ctx, siteDir, build.Options{Recorder: rec})
//	_ = metrics.WriteTextfile(path, reg)
package metrics
