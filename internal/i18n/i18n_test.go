// Copyright (c) 2026 EWC CLI Team
// ewccli - European Weather Cloud command-line client
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import "testing"

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("profile.none"); got != "No profiles found." {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := T("error.profile_not_found", "team-a"); got != "Profile 'team-a' not found." {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	Init("de")
	defer Init("en")
	if got := T("profile.none"); got != "Keine Profile gefunden." {
		t.Fatalf("expected German translation, got %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected message ID fallback, got %q", got)
	}
}

func TestT_UnknownLanguageUsesEnglish(t *testing.T) {
	Init("xx")
	defer Init("en")
	if got := T("profile.none"); got != "No profiles found." {
		t.Fatalf("expected English fallback, got %q", got)
	}
}
