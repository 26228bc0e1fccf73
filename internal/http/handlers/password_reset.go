package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/validation"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

type resetInput struct {
	Token           string `form:"token" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=NewPassword"`
	StoreURL        string `form:"store_url"`
}

func (h *AuthHandlers) ResetPasswordGet(c *gin.Context) {
	token := c.Query("token")
	page := view.ResetPasswordPage{
		FormPage: view.FormPage{Frame: merchantFrame(c, "Reset password")},
		Token:    token,
	}
	if token == "" {
		page.PageError = "This reset link is invalid or has expired. Request a new one."
	}
	render.Page(c, http.StatusOK, "reset_password.html", page)
}

func (h *AuthHandlers) ResetPasswordPost(c *gin.Context) {
	var in resetInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderReset(c, http.StatusBadRequest, in.Token, validation.FromBindError(err, &in), "")
		return
	}

	// Policy check happens here; nothing is sent upstream for a weak password.
	if msg := validation.CheckPassword(in.NewPassword); msg != "" {
		h.renderReset(c, http.StatusBadRequest, in.Token, map[string]string{"new_password": msg}, "")
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), in.Token, in.NewPassword, in.StoreURL); err != nil {
		h.renderReset(c, apperr.HTTPStatus(err), in.Token, nil, apperr.PublicMessage(err))
		return
	}

	render.RedirectWithFlash(c, h.flash, "/login", view.FlashSuccess, "Password reset. You can sign in now.")
}

func (h *AuthHandlers) renderReset(c *gin.Context, status int, token string, errs map[string]string, pageErr string) {
	render.Page(c, status, "reset_password.html", view.ResetPasswordPage{
		FormPage: view.FormPage{
			Frame:     merchantFrame(c, "Reset password"),
			Errors:    errs,
			PageError: pageErr,
		},
		Token: token,
	})
}
