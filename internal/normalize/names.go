package normalize

import "strings"

// NormalizeHeader trims whitespace and a leading UTF-8 BOM from a column name.
func NormalizeHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

// NormalizeHeaders applies NormalizeHeader to every entry in place and
// returns the slice.
func NormalizeHeaders(hs []string) []string {
	for i, h := range hs {
		hs[i] = NormalizeHeader(h)
	}
	return hs
}

// NormalizeName trims surrounding whitespace. Casing and inner spacing are
// preserved since payer names are displayed and filtered verbatim.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}
