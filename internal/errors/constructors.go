package errors

import (
	"fmt"
	"strings"
)

// Convenience functions for the load error taxonomy

// Config errors

func ConfigNotFound(fileName, path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("%s not found", fileName)).
		WithKind(KindConfigNotFound).
		WithContext("path", path)
}

func MissingRequiredFields(fileName string, fields []string) *SiteError {
	msg := fmt.Sprintf("The required field(s) %s are missing from %s", FormatFields(fields), fileName)
	return New(CategoryConfig, SeverityFatal, msg).
		WithKind(KindMissingFields).
		WithContext("fields", fields)
}

func UnrecognizedFields(fileName string, fields []string) *SiteError {
	msg := fmt.Sprintf("The field(s) %s are not recognized in %s.\n"+
		"If you still want these fields to be in your configuration, put them in the 'customFields' attribute.",
		FormatFields(fields), fileName)
	return New(CategoryConfig, SeverityFatal, msg).
		WithKind(KindUnrecognizedFields).
		WithContext("fields", fields)
}

func InvalidPluginFormat(field string, index int, cause error) *SiteError {
	return Wrap(cause, CategoryValidation, SeverityFatal, fmt.Sprintf("Invalid %s format detected in config.", field)).
		WithKind(KindInvalidPluginFormat).
		WithContext("field", field).
		WithContext("index", index)
}

func ConfigParse(path string, cause error) *SiteError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "failed to parse configuration").
		WithContext("path", path)
}

// Extension errors

func InvalidPresetFormat(index int) *SiteError {
	return New(CategoryValidation, SeverityFatal, "Invalid presets format detected in config.").
		WithKind(KindInvalidPresetFormat).
		WithContext("index", index)
}

func PluginInstantiation(name string, cause error) *SiteError {
	return Wrap(cause, CategoryPlugin, SeverityFatal, "plugin instantiation failed").
		WithKind(KindPluginInstantiation).
		WithContext("plugin", name)
}

// Build errors

func InvalidRoute(plugin, path string, cause error) *SiteError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "invalid route config (path must be a string and component is required)").
		WithKind(KindInvalidRoute).
		WithContext("plugin", plugin).
		WithContext("path", path)
}

func ArtifactWrite(name string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to write generated artifact").
		WithKind(KindArtifactWrite).
		WithContext("artifact", name)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

// FormatFields renders field names the way config errors list them: 'a', 'b'.
func FormatFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "'" + f + "'"
	}
	return strings.Join(quoted, ", ")
}
