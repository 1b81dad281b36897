package tmx

import "testing"

func TestMatchLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tag    string
		target string
		want   bool
	}{
		{"exact", "en", "en", true},
		{"case insensitive", "EN", "en", true},
		{"region to base", "en-US", "en", true},
		{"region to base upper", "EN-gb", "en", true},
		{"full tag", "en-US", "en-us", true},
		{"base to region", "en", "en-US", false},
		{"different language", "es", "en", false},
		{"absent tag", "", "en", false},
		{"absent target", "en", "", false},
		{"prefix is not base", "eng", "en", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MatchLanguage(tt.tag, tt.target); got != tt.want {
				t.Errorf("MatchLanguage(%q, %q) = %v, want %v", tt.tag, tt.target, got, tt.want)
			}
		})
	}
}

func TestNormalizeLanguages(t *testing.T) {
	t.Parallel()

	got := normalizeLanguages([]string{"fr-CA", "", "EN", "en-US", "es", " fr "})
	want := []string{"en", "es", "fr"}

	if len(got) != len(want) {
		t.Fatalf("normalizeLanguages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("normalizeLanguages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
