package location

import (
	"regexp"
	"strings"
)

// rule is one (predicate, extractor) pair. Rules are evaluated top to bottom
// and the first match is final, so overlapping prefixes ("junction pizza inn"
// before "junction mall") must stay in order.
type rule struct {
	name    string
	match   func(lower string) bool
	extract func(s, lower string) (merchant, area string)
}

var dupointRe = regexp.MustCompile(`(?i)^(dupoint|dupont)\s+lounge\s*(.*)`)

var rules = []rule{
	brandRule("shell", "Shell", len("shell")),
	brandRule("total", "Total", len("total")),
	{
		name:  "home",
		match: prefix("home"),
		extract: func(s, _ string) (string, string) {
			// "Home_Kikuyu Road" and "Home - Kikuyu" both carry the area
			// after the first underscore or hyphen.
			if i := strings.IndexAny(s, "_-"); i >= 0 {
				return "Home", orUnknown(strings.TrimSpace(s[i+1:]))
			}
			return "Home", orUnknown(remainder(s, len("home")))
		},
	},
	{
		name:  "love dale",
		match: prefix("love dale butchery", "love dale"),
		extract: func(s, _ string) (string, string) {
			if i := strings.Index(s, "_"); i >= 0 {
				return "Love Dale Butchery", orUnknown(strings.TrimSpace(s[i+1:]))
			}
			return "Love Dale Butchery", orUnknown(remainder(s, len("Love Dale Butchery")))
		},
	},
	{
		name:  "dupoint",
		match: prefix("dupoint", "dupont"),
		extract: func(s, _ string) (string, string) {
			area := ""
			if m := dupointRe.FindStringSubmatch(s); m != nil {
				area = strings.TrimSpace(m[2])
			}
			return "Dupoint Lounge", orUnknown(area)
		},
	},
	brandRule("greenview", "Greenview Restaurant", len("greenview")),
	brandRule("fish pit hub", "Fish Pit Hub", len("fish pit hub")),
	constRule("junction pizza inn", "Pizza Inn", "Junction Mall"),
	constRule("junction mall", "Junction Mall", "Junction Mall"),
	brandRule("leofresh", "LeoFresh", len("leofresh")),
	brandRule("nairobi chapel", "Nairobi Chapel", len("nairobi chapel")),
	constRule("karura forest", "Karura Forest", "Karura"),
	brandRule("rockwell", "Rockwell Service Station", len("rockwell")),
	constRule("kisii", "Kisii Contribution", "Kisii"),
	constRule("naivasha road", "Naivasha Road", "Naivasha Road"),
}

func prefix(prefixes ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(lower, p) {
				return true
			}
		}
		return false
	}
}

// brandRule matches a case-insensitive prefix and derives the area from the
// remainder after cutting `cut` bytes of canonical prefix.
func brandRule(pfx, merchant string, cut int) rule {
	return rule{
		name:  pfx,
		match: prefix(pfx),
		extract: func(s, _ string) (string, string) {
			return merchant, orUnknown(remainder(s, cut))
		},
	}
}

// constRule maps a prefix to a fixed merchant and area regardless of the
// remaining text.
func constRule(pfx, merchant, area string) rule {
	return rule{
		name:  pfx,
		match: prefix(pfx),
		extract: func(_, _ string) (string, string) {
			return merchant, area
		},
	}
}
