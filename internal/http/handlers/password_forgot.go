package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/validation"
	"metadologie.com/portal/pkg/view"
)

type forgotInput struct {
	Email string `form:"email" binding:"required,email"`
}

func (h *AuthHandlers) ForgotPasswordGet(c *gin.Context) {
	render.Page(c, http.StatusOK, "forgot_password.html", view.ForgotPasswordPage{
		FormPage: view.FormPage{Frame: merchantFrame(c, "Forgot password")},
	})
}

// ForgotPasswordPost always renders the sent state, whether or not the email
// exists. Masking the difference prevents account enumeration.
func (h *AuthHandlers) ForgotPasswordPost(c *gin.Context) {
	var in forgotInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "forgot_password.html", view.ForgotPasswordPage{
			FormPage: view.FormPage{
				Frame:  merchantFrame(c, "Forgot password"),
				Errors: validation.FromBindError(err, &in),
			},
			Form: view.ForgotPasswordForm{Email: in.Email},
		})
		return
	}

	storeURL := strings.TrimSpace(c.PostForm("store_url"))
	_ = h.auth.ForgotPassword(c.Request.Context(), in.Email, storeURL)

	render.Page(c, http.StatusOK, "forgot_password.html", view.ForgotPasswordPage{
		FormPage: view.FormPage{Frame: merchantFrame(c, "Forgot password")},
		Form:     view.ForgotPasswordForm{Email: in.Email},
		Sent:     true,
	})
}
