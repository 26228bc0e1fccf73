package handlers

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/pkg/view"
)

// listLimit is forwarded verbatim to the backend; filtering and pagination
// happen client-side over the full result set.
const listLimit = "100"

const defaultPageSize = 10

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

func merchantFrame(c *gin.Context, title string) view.Frame {
	f := view.Frame{
		Title:     title,
		Area:      "merchant",
		Flash:     middleware.GetFlash(c),
		CSRFToken: middleware.GetCSRFToken(c),
	}
	if u, ok := middleware.CurrentMerchant(c); ok {
		f.UserEmail = u.Email
		f.UserName = u.Name
	}
	return f
}
