package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		name string
		pw   string
		ok   bool
	}{
		{"valid", "Sup3r-secret", true},
		{"valid with space", "Pass word!", true},
		{"too short", "Ab!def7", false},
		{"no leading uppercase", "super-secret1", false},
		{"leading digit", "1Supersecret!", false},
		{"no symbol", "Supersecret1", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := CheckPassword(tc.pw)
			if tc.ok {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestCheckPasswordMessages(t *testing.T) {
	assert.Equal(t, "Password must be at least 8 characters long.", CheckPassword("Ab!"))
	assert.Equal(t, "Password must start with an uppercase letter.", CheckPassword("ab!defgh"))
	assert.Equal(t, "Password must contain at least one special character.", CheckPassword("Abcdefgh"))
}
