package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/shared/apperr"
)

const (
	csrfCookieName = "portal_csrf"
	csrfFormField  = "_csrf"
	ctxKeyCSRF     = "csrf_token"
)

// CSRF implements double-submit-cookie protection: a random token cookie,
// echoed back as a hidden form field on every POST.
func CSRF(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(csrfCookieName)
		if err != nil || token == "" {
			token = newCSRFToken()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(csrfCookieName, token, 0, "/", "", secure, true)
		}
		c.Set(ctxKeyCSRF, token)

		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			sent := c.PostForm(csrfFormField)
			if sent == "" {
				sent = c.GetHeader("X-CSRF-Token")
			}
			if !hmac.Equal([]byte(sent), []byte(token)) {
				Fail(c, apperr.ForbiddenErr("The form has expired. Please try again."))
				return
			}
		}

		c.Next()
	}
}

func GetCSRFToken(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyCSRF); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func newCSRFToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "csrf_fallback"
	}
	return hex.EncodeToString(b)
}
