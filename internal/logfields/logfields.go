package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPlugin     = "plugin"
	KeyPreset     = "preset"
	KeyArtifact   = "artifact"
	KeyPath       = "path"
	KeySiteDir    = "site_dir"
	KeyRoute      = "route"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Preset(ref string) slog.Attr     { return slog.String(KeyPreset, ref) }
func Artifact(name string) slog.Attr  { return slog.String(KeyArtifact, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func SiteDir(d string) slog.Attr      { return slog.String(KeySiteDir, d) }
func Route(p string) slog.Attr        { return slog.String(KeyRoute, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
