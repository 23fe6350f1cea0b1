package utils

import (
	"regexp"
)

var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidSubdomain reports whether s is a usable DNS label: lowercase
// alphanumerics and hyphens, no leading/trailing hyphen, max 63 chars.
func ValidSubdomain(s string) bool {
	return subdomainRe.MatchString(s)
}
