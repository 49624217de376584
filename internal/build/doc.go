// Package build runs one site load: it reads the configuration, expands
// presets, instantiates plugins in precedence order, resolves theme aliases,
// aggregates HTML tags and client modules, flattens routes into the chunk
// registry and emits the generated artifacts the bundler consumes.
//
// Every call to Load starts from scratch. Nothing is cached between loads,
// and concurrent loads against the same site directory must be serialized
// by the caller.
package build
