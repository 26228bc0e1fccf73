package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/session"
)

// SessionCfg holds configuration for the session middleware.
type SessionCfg struct {
	Store      session.Store
	CookieName string
	Secure     bool
	TTL        time.Duration
}

const (
	ctxKeySession      = "session"
	ctxKeyMerchantUser = "merchant_user"
	ctxKeyAdminUser    = "admin_user"
)

// SessionMiddleware loads the session row and stashes both credential slots
// (and their cached principals) in the gin context.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		sess, err := cfg.Store.Get(c.Request.Context(), sessionID)
		if err != nil {
			// Invalid or expired session, clear cookie
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
			c.Next()
			return
		}

		c.Set(ctxKeySession, sess)
		if u, ok := sess.MerchantUser(); ok && sess.MerchantToken != "" {
			c.Set(ctxKeyMerchantUser, u)
		}
		if u, ok := sess.AdminUser(); ok && sess.AdminToken != "" {
			c.Set(ctxKeyAdminUser, u)
		}

		c.Next()
	}
}

func GetSession(c *gin.Context) (*session.Session, bool) {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(*session.Session); ok {
			return s, true
		}
	}
	return nil, false
}

// EnsureSession returns the request's session, creating one (and setting the
// cookie) when the browser has none yet. Login handlers use this.
func EnsureSession(c *gin.Context, cfg SessionCfg) (*session.Session, error) {
	if s, ok := GetSession(c); ok {
		return s, nil
	}
	s, err := cfg.Store.Create(c.Request.Context(), cfg.TTL)
	if err != nil {
		return nil, err
	}
	c.SetCookie(cfg.CookieName, s.ID, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
	c.Set(ctxKeySession, s)
	return s, nil
}

func CurrentMerchant(c *gin.Context) (*api.User, bool) {
	if v, ok := c.Get(ctxKeyMerchantUser); ok {
		if u, ok := v.(*api.User); ok {
			return u, true
		}
	}
	return nil, false
}

func CurrentAdmin(c *gin.Context) (*api.User, bool) {
	if v, ok := c.Get(ctxKeyAdminUser); ok {
		if u, ok := v.(*api.User); ok {
			return u, true
		}
	}
	return nil, false
}

// TokenFor selects the bearer token for this request's path from the
// session's credential slots.
func TokenFor(c *gin.Context) (string, bool) {
	s, ok := GetSession(c)
	if !ok {
		return "", false
	}
	return session.SelectToken(c.Request.URL.Path, s.Slots())
}
