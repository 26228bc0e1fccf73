package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/http/flash"
	"metadologie.com/portal/pkg/view"
)

// RequireAdmin: without an admin session slot the request is redirected to the
// admin login (SSR) or rejected with 401 (JSON). Whether the admin token may
// actually see a given merchant's data is the backend's call, not ours.
func RequireAdmin(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAdmin(c); ok {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		returnTo := c.Request.URL.RequestURI()
		SetFlashCookie(c, flashCodec, view.Flash{
			Kind:    view.FlashWarning,
			Message: "Please sign in to the admin area.",
		})
		c.Redirect(http.StatusFound, "/admin/login?return_to="+url.QueryEscape(returnTo))
		c.Abort()
	}
}
