package render

import (
	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/pkg/view"
)

func ErrorPage(c *gin.Context, status int, msg string) {
	Page(c, status, "error.html", view.ErrorPage{
		Frame: view.Frame{
			Title: "Error",
			Flash: middleware.GetFlash(c),
		},
		Status:    status,
		Message:   msg,
		RequestID: middleware.GetRequestID(c),
	})
}
