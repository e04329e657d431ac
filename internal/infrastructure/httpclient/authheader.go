package httpclient

import "strings"

// FormatAuthHeader returns the canonical Authorization value for a bearer
// token: exactly one space after the scheme, surrounding whitespace trimmed.
// Feeding its own output back yields the same string. An empty or
// whitespace-only token formats to "".
func FormatAuthHeader(tok string) string {
	t := strings.TrimSpace(tok)
	if t == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(t, "Bearer"); ok && (rest == "" || rest[0] == ' ') {
		t = strings.TrimSpace(rest)
		if t == "" {
			return ""
		}
	}
	return "Bearer " + t
}
