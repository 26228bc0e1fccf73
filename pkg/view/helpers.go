package view

import "strings"

// Display normalizes an upstream display value: empty and "N/A" become "-".
func Display(v string) string {
	t := strings.TrimSpace(v)
	if t == "" || strings.EqualFold(t, "n/a") {
		return "-"
	}
	return v
}

// MatchFold reports whether needle is a case-insensitive substring of any field.
// An empty needle matches everything.
func MatchFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	n := strings.ToLower(needle)
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), n) {
			return true
		}
	}
	return false
}
