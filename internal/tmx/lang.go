package tmx

import (
	"slices"
	"strings"
)

// MatchLanguage reports whether a declared language tag satisfies target.
// An absent tag never matches. Comparison is case-insensitive, first on the
// whole tag, then on its base subtag: MatchLanguage("en-US", "en") is true,
// MatchLanguage("en", "en-US") is false.
func MatchLanguage(tag, target string) bool {
	tag = strings.TrimSpace(tag)
	target = strings.TrimSpace(target)
	if tag == "" || target == "" {
		return false
	}
	if strings.EqualFold(tag, target) {
		return true
	}
	return strings.EqualFold(baseSubtag(tag), target)
}

// baseSubtag returns the part of tag before the first '-'.
func baseSubtag(tag string) string {
	base, _, _ := strings.Cut(tag, "-")
	return base
}

// normalizeLanguages lowercases base subtags, drops absent tags and
// returns the sorted distinct set.
func normalizeLanguages(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		base := strings.ToLower(baseSubtag(tag))
		if base == "" {
			continue
		}
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		out = append(out, base)
	}
	slices.Sort(out)
	return out
}
