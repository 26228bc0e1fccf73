package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/http/flash"
	"metadologie.com/portal/pkg/view"
)

// RequireMerchant: without a merchant session
// - SSR: flash + /login?return_to=... redirect
// - JSON: 401
func RequireMerchant(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentMerchant(c); ok {
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
			Message: "Please sign in to continue.",
		})

		c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(returnTo))
		c.Abort()
	}
}
