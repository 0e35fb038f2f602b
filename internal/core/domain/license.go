package domain

import "strings"

// licenseAliases maps free-text license strings that the substring heuristics
// cannot classify to their canonical tokens.
var licenseAliases = map[string]string{
	"ASL 2.0": "Apache-2.0",
	"Historical Permission Notice and Disclaimer": "HPND",
}

// permissiveTokens is the set of lowercased canonical tokens accepted without
// an explicit policy toggle.
var permissiveTokens = map[string]struct{}{
	"mit":        {},
	"apache-2.0": {},
	"unlicense":  {},
	"mpl-2.0":    {},
	"isc":        {},
	"bsd":        {},
	"psf":        {},
	"zpl":        {},
	"hpnd":       {},
}

// NormalizeLicense reduces a free-text license string to a canonical token.
//
// License metadata in the wild is free text rather than a controlled
// vocabulary, so this trades precision for recall: an exact alias lookup
// first, then ordered substring heuristics over the full string. The order
// matters because a string can contain several matching substrings ("MIT
// license for Python" must resolve the same way every time), and the lesser
// GNU phrasings must win over the plain GNU ones. Strings that match nothing
// pass through unchanged, minus a trailing " license" suffix.
func NormalizeLicense(raw string) string {
	li := strings.TrimSpace(raw)
	if canonical, ok := licenseAliases[li]; ok {
		return canonical
	}

	lower := strings.ToLower(li)
	switch {
	case strings.Contains(lower, "bsd"):
		return "BSD"
	case strings.Contains(lower, "apache"):
		return "Apache-2.0"
	case strings.Contains(lower, "mit"):
		return "MIT"
	case strings.HasPrefix(li, "ZPL"):
		return "ZPL"
	case strings.Contains(lower, "lesser gnu public license"),
		strings.Contains(lower, "lesser general public license"):
		return "LGPL"
	case strings.Contains(lower, "gnu public license"),
		strings.Contains(lower, "general public license"):
		return "GPL"
	case strings.Contains(lower, "python"):
		return "PSF"
	}

	if strings.HasSuffix(lower, " license") {
		li = strings.TrimSpace(li[:len(li)-len(" license")])
	}
	if canonical, ok := licenseAliases[li]; ok {
		return canonical
	}
	return li
}

// Permissive reports whether the lowercased canonical token belongs to the
// fixed set of licenses accepted without an explicit policy toggle.
func Permissive(token string) bool {
	_, ok := permissiveTokens[token]
	return ok
}
