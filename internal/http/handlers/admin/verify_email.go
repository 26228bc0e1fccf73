package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

// VerifyEmailHandler confirms a pending admin email change. The link in the
// verification mail points here, so the route is public: the admin may open
// it in a browser without an active session.
type VerifyEmailHandler struct {
	admin *api.AdminService
}

func NewVerifyEmailHandler(admin *api.AdminService) *VerifyEmailHandler {
	return &VerifyEmailHandler{admin: admin}
}

func (h *VerifyEmailHandler) Get(c *gin.Context) {
	page := view.VerifyEmailPage{
		Frame: view.Frame{Title: "Verify email", Area: "admin"},
	}

	token := c.Query("token")
	if token == "" {
		page.Message = "The verification link is missing its token."
		render.Page(c, http.StatusBadRequest, "verify_email.html", page)
		return
	}

	if err := h.admin.VerifyEmailChange(c.Request.Context(), token); err != nil {
		page.Message = apperr.PublicMessage(err)
		render.Page(c, apperr.HTTPStatus(err), "verify_email.html", page)
		return
	}

	page.OK = true
	page.Message = "Your new email address is confirmed. You can sign in with it now."
	render.Page(c, http.StatusOK, "verify_email.html", page)
}
