package probe

import (
	"regexp"
	"strings"
)

// reDomain matches bare-domain input: host characters, a dot, and a
// top-level label of at least two letters, anchored at the start.
var reDomain = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Normalize canonicalizes a raw input line into a fetchable URL.
// Scheme-prefixed input passes through unchanged; bare domains get
// https:// prepended. The second return value is false when the line
// is empty or does not look like a URL at all.
func Normalize(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
		return line, true
	}

	if reDomain.MatchString(line) {
		return "https://" + line, true
	}

	return "", false
}
