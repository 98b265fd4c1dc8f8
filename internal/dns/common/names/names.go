// Package names normalizes user-supplied domain names before they reach
// the wire codec.
package names

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// Canonical returns name in the form the codec expects: IDNA-mapped to
// ASCII (so unicode names become their xn-- punycode labels), lowercased,
// trimmed of whitespace and trailing dots.
func Canonical(name string) (string, error) {
	name = strings.TrimSpace(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	if name == "" {
		return "", nil
	}
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("invalid domain name %q: %w", name, err)
	}
	return strings.ToLower(ascii), nil
}
