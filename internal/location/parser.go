// Package location derives a canonical (merchant, area) pair from the
// free-text Location column of the ledger.
//
// Classification runs an ordered list of brand rules, first match wins,
// followed by generic fallbacks. The per-rule extraction quirks (constant
// areas for some venues, remainder-derived areas for others) mirror how the
// data is actually captured; they are intentional and must not be unified.
package location

import (
	"regexp"
	"strings"
)

// Unknown is the placeholder for any field that cannot be derived.
const Unknown = "Unknown"

const separators = " ,-_"

var wsRun = regexp.MustCompile(`\s+`)

// Parse classifies a raw location string. It is pure and total: every input,
// including the empty string, yields a non-empty merchant and area.
func Parse(raw string) (merchant, area string) {
	s := wsRun.ReplaceAllString(strings.TrimSpace(raw), " ")
	if s == "" {
		return Unknown, Unknown
	}
	lower := strings.ToLower(s)

	for _, r := range rules {
		if r.match(lower) {
			return r.extract(s, lower)
		}
	}

	// No brand rule matched: try the underscore convention, then word count.
	if i := strings.Index(s, "_"); i >= 0 {
		return orUnknown(strings.TrimSpace(s[:i])), orUnknown(strings.TrimSpace(s[i+1:]))
	}
	words := strings.Fields(s)
	if len(words) <= 2 {
		return s, Unknown
	}
	return strings.Join(words[:2], " "), orUnknown(strings.Join(words[2:], " "))
}

// remainder strips a fixed-length prefix from s and trims separator
// characters from both ends. The cut length is the canonical prefix length,
// not the matched text length; shorter inputs yield an empty remainder.
func remainder(s string, n int) string {
	if n >= len(s) {
		return ""
	}
	return strings.Trim(s[n:], separators)
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
