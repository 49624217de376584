package plugin

import (
	"log/slog"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// LoadContext is the read-only view of the site every factory receives.
type LoadContext struct {
	// SiteDir is the absolute site root.
	SiteDir string

	// GeneratedFilesDir is where virtual files for the bundler are written.
	GeneratedFilesDir string

	// SiteConfig is shared by the whole load and must be treated as
	// read-only. Instantiate hands each factory its own Clone.
	SiteConfig *config.SiteConfig

	// OutDir is the build output directory.
	OutDir string

	BaseURL string

	// BuildID uniquely identifies this load.
	BuildID string

	// Logger is optional; Log falls back to slog.Default().
	Logger *slog.Logger
}

// Log returns the load logger tagged with the build id.
func (c LoadContext) Log() *slog.Logger {
	l := c.Logger
	if l == nil {
		l = slog.Default()
	}
	if c.BuildID != "" {
		l = l.With(logfields.BuildID(c.BuildID))
	}
	return l
}

// ForPlugin returns a logger tagged with the plugin name.
func (c LoadContext) ForPlugin(name string) *slog.Logger {
	return c.Log().With(logfields.Plugin(name))
}
