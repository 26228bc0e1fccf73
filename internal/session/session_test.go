package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"metadologie.com/portal/internal/api"
)

func TestSelectToken(t *testing.T) {
	cases := []struct {
		name  string
		path  string
		slots Slots
		want  string
		ok    bool
	}{
		{"merchant path, merchant slot", "/transactions", Slots{MerchantToken: "m"}, "m", true},
		{"merchant path, both slots", "/transactions", Slots{MerchantToken: "m", AdminToken: "a"}, "m", true},
		{"merchant path, admin only", "/transactions", Slots{AdminToken: "a"}, "a", true},
		{"admin path, admin slot", "/admin/stores", Slots{AdminToken: "a"}, "a", true},
		{"admin path, both slots", "/admin/stores", Slots{MerchantToken: "m", AdminToken: "a"}, "a", true},
		{"admin path, merchant only", "/admin/stores", Slots{MerchantToken: "m"}, "m", true},
		{"no slots", "/transactions", Slots{}, "", false},
		{"admin path, no slots", "/admin/stores", Slots{}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SelectToken(tc.path, tc.slots)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSessionSlotsAndClearAll(t *testing.T) {
	s := &Session{}
	s.SetMerchant("m_tok", &api.User{ID: "u1", Email: "m@x.y"})
	s.SetAdmin("a_tok", &api.User{ID: "u2", Email: "a@x.y"})

	mu, ok := s.MerchantUser()
	assert.True(t, ok)
	assert.Equal(t, "m@x.y", mu.Email)

	au, ok := s.AdminUser()
	assert.True(t, ok)
	assert.Equal(t, "a@x.y", au.Email)

	s.ClearAll()
	assert.Empty(t, s.MerchantToken)
	assert.Empty(t, s.AdminToken)
	_, ok = s.MerchantUser()
	assert.False(t, ok)
	_, ok = s.AdminUser()
	assert.False(t, ok)
}

func TestMalformedUserJSONReadsAsEmpty(t *testing.T) {
	s := &Session{MerchantUserJSON: "{not json"}
	_, ok := s.MerchantUser()
	assert.False(t, ok)
}
