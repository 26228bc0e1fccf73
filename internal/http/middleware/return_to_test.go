package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeReturnTo(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"relative path", "/transactions", "/transactions"},
		{"admin path with query", "/admin/stores?page=2", "/admin/stores?page=2"},
		{"missing leading slash", "transactions", ""},
		{"absolute url", "https://evil.example/phish", ""},
		{"protocol relative", "//evil.example/phish", ""},
		{"scheme smuggled in path", "/redirect?to=https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeReturnTo(tt.in))
		})
	}
}
