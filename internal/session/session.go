// Package session holds the portal's only server-side state: a session row
// with two independent credential slots (merchant and admin), so one browser
// can be signed in to both areas at once. All other data lives in the backend.
package session

import (
	"encoding/json"
	"strings"
	"time"

	"metadologie.com/portal/internal/api"
)

// Slots are the named credential slots of a session.
type Slots struct {
	MerchantToken string
	AdminToken    string
}

// SelectToken picks the bearer token for a request path: paths under /admin
// prefer the admin slot, everything else the merchant slot, falling back to
// whichever exists.
func SelectToken(path string, s Slots) (string, bool) {
	if strings.HasPrefix(path, "/admin") {
		if s.AdminToken != "" {
			return s.AdminToken, true
		}
		if s.MerchantToken != "" {
			return s.MerchantToken, true
		}
		return "", false
	}
	if s.MerchantToken != "" {
		return s.MerchantToken, true
	}
	if s.AdminToken != "" {
		return s.AdminToken, true
	}
	return "", false
}

// Session is the database-backed session model.
type Session struct {
	ID               string    `gorm:"primaryKey;type:char(36)"`
	MerchantToken    string    `gorm:"type:text"`
	AdminToken       string    `gorm:"type:text"`
	MerchantUserJSON string    `gorm:"type:text"`
	AdminUserJSON    string    `gorm:"type:text"`
	RememberedEmail  string    `gorm:"type:varchar(255)"`
	ExpiresAt        time.Time `gorm:"type:datetime(3);not null;index:ix_sessions_expires_at"`
	CreatedAt        time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt        time.Time `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) Slots() Slots {
	return Slots{MerchantToken: s.MerchantToken, AdminToken: s.AdminToken}
}

// MerchantUser returns the cached merchant principal. Malformed stored JSON is
// swallowed: the slot just reads as empty.
func (s *Session) MerchantUser() (*api.User, bool) {
	return parseUser(s.MerchantUserJSON)
}

func (s *Session) AdminUser() (*api.User, bool) {
	return parseUser(s.AdminUserJSON)
}

func parseUser(raw string) (*api.User, bool) {
	if raw == "" {
		return nil, false
	}
	var u api.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (s *Session) SetMerchant(token string, u *api.User) {
	s.MerchantToken = token
	s.MerchantUserJSON = encodeUser(u)
}

func (s *Session) SetAdmin(token string, u *api.User) {
	s.AdminToken = token
	s.AdminUserJSON = encodeUser(u)
}

// ClearAll empties both slots. Logout always clears both, regardless of which
// one was active.
func (s *Session) ClearAll() {
	s.MerchantToken = ""
	s.AdminToken = ""
	s.MerchantUserJSON = ""
	s.AdminUserJSON = ""
}

func encodeUser(u *api.User) string {
	if u == nil {
		return ""
	}
	b, err := json.Marshal(u)
	if err != nil {
		return ""
	}
	return string(b)
}
