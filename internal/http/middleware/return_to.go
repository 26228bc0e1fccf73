package middleware

import "strings"

// SafeReturnTo validates a post-login redirect target. Only same-site
// relative paths pass; absolute and protocol-relative URLs are dropped.
func SafeReturnTo(s string) string {
	if s == "" || s[0] != '/' {
		return ""
	}
	// block protocol-relative "//evil.com"
	if strings.HasPrefix(s, "//") {
		return ""
	}
	if strings.Contains(s, "://") {
		return ""
	}
	return s
}
