package render

import "regexp"

var (
	tokenPattern     = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)
	tokenNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// ValidTokenName reports whether name may appear inside a marker.
func ValidTokenName(name string) bool {
	return tokenNamePattern.MatchString(name)
}

// Substitute replaces every {{name}} marker found in mapping with its value.
// Unknown markers are kept verbatim. Replacement values are spliced in as-is
// and never scanned again.
func Substitute(raw string, mapping map[string]string) string {
	if raw == "" || len(mapping) == 0 {
		return raw
	}
	return tokenPattern.ReplaceAllStringFunc(raw, func(marker string) string {
		name := marker[2 : len(marker)-2]
		if value, ok := mapping[name]; ok {
			return value
		}
		return marker
	})
}

// Tokens lists the distinct token names referenced by raw in order of first use.
func Tokens(raw string) []string {
	matches := tokenPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Unresolved lists the tokens referenced by raw that mapping cannot satisfy.
func Unresolved(raw string, mapping map[string]string) []string {
	var missing []string
	for _, name := range Tokens(raw) {
		if _, ok := mapping[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
