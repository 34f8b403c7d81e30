package models

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var rootDomainRE = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)

// Domain is a validated, lowercase root domain with no scheme or path.
type Domain string

func (d Domain) String() string { return string(d) }

// NormalizeDomain strips scheme prefixes, paths and trailing dots, lowercases
// the input and converts unicode labels to their ASCII form. The returned
// string is not guaranteed to be valid; run it through IsValidDomain.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(d, scheme) {
			d = d[len(scheme):]
			break
		}
	}
	if idx := strings.IndexByte(d, '/'); idx >= 0 {
		d = d[:idx]
	}
	d = strings.TrimSuffix(d, ".")
	if ascii, err := idna.ToASCII(d); err == nil && ascii != "" {
		d = ascii
	}
	return d
}

// IsValidDomain reports whether d is a plausible root domain: lowercase,
// at least one dot, an alphabetic TLD, and RFC-conformant labels.
func IsValidDomain(d string) bool {
	if d == "" || len(d) > 253 || strings.ContainsAny(d, " \t") {
		return false
	}
	if !rootDomainRE.MatchString(d) {
		return false
	}
	for _, label := range strings.Split(d, ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
	}
	return true
}

// ParseDomain normalizes and validates raw, returning a Domain or an error.
func ParseDomain(raw string) (Domain, error) {
	d := NormalizeDomain(raw)
	if !IsValidDomain(d) {
		return "", fmt.Errorf("invalid domain: %q", raw)
	}
	return Domain(d), nil
}
