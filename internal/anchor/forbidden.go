package anchor

import "regexp"

// forbiddenPatterns is the final safety gate: known-bad fragments that must
// never reach a human-facing reply. Most entries are broken constructions the
// extractor has produced in the past when a regex swallowed a dependent
// clause; the rest are overly generic industry lists that read as canned.
// The list is data so new escapes can be pinned without touching the
// composer.
var forbiddenPatterns = []string{
	`the people i mentioned are`,
	`\bare (?:lose|losing|struggle|struggling|waste|wasting)\b`,
	`\bthey(?:'re)? they\b`,
	`\bthe ones (?:who|that) i\b`,
	`(?:businesses and companies|companies and businesses)`,
	`various (?:industries|businesses|companies)`,
	`small businesses, startups, and enterprises`,
}

var forbiddenRes = compileForbidden()

func compileForbidden() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(forbiddenPatterns))
	for _, p := range forbiddenPatterns {
		res = append(res, regexp.MustCompile(`(?i)`+p))
	}
	return res
}

// isForbidden reports whether s matches any forbidden pattern.
func isForbidden(s string) bool {
	for _, re := range forbiddenRes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ForbiddenPatterns returns the forbidden-pattern list as inspectable data.
func ForbiddenPatterns() []string {
	out := make([]string, len(forbiddenPatterns))
	copy(out, forbiddenPatterns)
	return out
}
