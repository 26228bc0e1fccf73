package render

import (
	"github.com/gin-gonic/gin"
)

// Page renders a named template from the shared template set.
func Page(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}
