package config

// Well-known names under a site directory.
const (
	// ConfigFileName is the site configuration file looked up in the site root.
	ConfigFileName = "sitebuilder.config.yaml"

	// GeneratedFilesDirName holds every artifact emitted for the bundler.
	GeneratedFilesDirName = ".sitebuilder"

	// BuildDirName is the default output directory when no custom one is given.
	BuildDirName = "build"

	// ThemePath is the user theme override directory, relative to the site root.
	ThemePath = "src/theme"

	// EnvFileName is loaded (without overriding the process environment) before
	// the configuration is parsed.
	EnvFileName = ".env"
)

// RequiredFields must be present at the top level of the configuration file.
var RequiredFields = []string{"baseUrl", "favicon", "title", "url"}

// OptionalFields may appear at the top level in addition to RequiredFields.
var OptionalFields = []string{
	"organizationName",
	"projectName",
	"customFields",
	"githubHost",
	"plugins",
	"themes",
	"presets",
	"themeConfig",
	"scripts",
	"stylesheets",
	"tagline",
}

// IsAllowedField reports whether name is a recognized top-level field.
func IsAllowedField(name string) bool {
	for _, f := range RequiredFields {
		if f == name {
			return true
		}
	}
	for _, f := range OptionalFields {
		if f == name {
			return true
		}
	}
	return false
}
