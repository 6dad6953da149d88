package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"golf-atlas/models"
)

var (
	// separatorRegexp matches runs of whitespace, hyphens and slashes in
	// headers. \s is ASCII-only in RE2, so Unicode spaces such as NBSP are
	// listed through \p{Z}.
	separatorRegexp = regexp.MustCompile(`[\s\p{Z}\x{FEFF}\-/]+`)
	// keyJunkRegexp matches anything a canonical key may not contain.
	keyJunkRegexp = regexp.MustCompile(`[^a-z0-9_]`)
	// numberRegexp captures the longest numeric prefix of a cleaned cell.
	numberRegexp = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)`)

	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeKey canonicalizes a CSV header for alias matching. It is defined
// for every string and NormalizeKey(NormalizeKey(x)) == NormalizeKey(x).
func NormalizeKey(header string) string {
	k := strings.ReplaceAll(header, "\ufeff", "")
	k = strings.ToLower(strings.TrimSpace(k))
	if folded, _, err := transform.String(stripAccents, k); err == nil {
		k = folded
	}
	k = separatorRegexp.ReplaceAllString(k, "_")
	k = strings.NewReplacer("(", "", ")", "").Replace(k)
	return keyJunkRegexp.ReplaceAllString(k, "")
}

// CanonicalRow re-keys a raw row under canonical keys. When two headers
// collapse to the same key the later column wins.
func CanonicalRow(row models.RawRow, headers []string) map[string]string {
	out := make(map[string]string, len(row))
	if len(headers) == 0 {
		for k, v := range row {
			out[NormalizeKey(k)] = v
		}
		return out
	}
	for _, h := range headers {
		if v, ok := row[h]; ok {
			out[NormalizeKey(h)] = v
		}
	}
	return out
}

// PickFirst returns the value of the first candidate key whose value is
// non-blank after trimming, or fallback when none matches.
func PickFirst(row map[string]string, keys []string, fallback string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return fallback
}

// ParseNumber strips everything but digits, periods and minus signs, then
// parses the longest numeric prefix, so only a leading minus counts.
// Currency symbols, thousands separators and trailing text are tolerated:
//
//	"$1,200.50"  → 1200.5
//	"-79.4696"   → -79.4696
//	"#3 overall" → 3
func ParseNumber(value string) (float64, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	match := numberRegexp.FindString(b.String())
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// IsAffirmative reports whether a yes/no-like cell reads as yes.
func IsAffirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}
