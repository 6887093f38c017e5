package domain

import (
	"regexp"
)

var emailPattern = regexp.MustCompile(`^([^@]+)@([^@]+\.[^@]+)$`)

// SplitEmail splits s into local part and domain when it has exactly one "@" and a
// dotted domain.
func SplitEmail(s string) (local, domain string, ok bool) {
	m := emailPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
