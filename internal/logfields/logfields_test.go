package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Stage", KeyStage, "plugins", Stage("plugins")},
		{"Plugin", KeyPlugin, "pages", Plugin("pages")},
		{"Preset", KeyPreset, "classic", Preset("classic")},
		{"Artifact", KeyArtifact, "routes.js", Artifact("routes.js")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"SiteDir", KeySiteDir, "/site", SiteDir("/site")},
		{"Route", KeyRoute, "/docs", Route("/docs")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	if a := Count(3); a.Key != KeyCount || a.Value.Int64() != 3 {
		t.Fatalf("Count attr = %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("DurationMS attr = %v", a)
	}
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("Error(nil) should be empty, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Fatalf("Error() = %q", a.Value.String())
	}
}
