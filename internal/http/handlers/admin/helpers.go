package admin

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/pkg/view"
)

const listLimit = "100"

const defaultPageSize = 10

func adminFrame(c *gin.Context, title string) view.Frame {
	f := view.Frame{
		Title:     title,
		Area:      "admin",
		Flash:     middleware.GetFlash(c),
		CSRFToken: middleware.GetCSRFToken(c),
	}
	if u, ok := middleware.CurrentAdmin(c); ok {
		f.UserEmail = u.Email
		f.UserName = u.Name
	}
	return f
}

// godModeFrame additionally records the merchantId scope of the page.
func godModeFrame(c *gin.Context, title string) (view.Frame, string) {
	merchantID := c.Query("merchantId")
	f := adminFrame(c, title)
	f.GodMode = merchantID != ""
	f.MerchantID = merchantID
	return f, merchantID
}

func pageParam(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return page
}

func listParams() url.Values {
	return url.Values{"limit": {listLimit}}
}
