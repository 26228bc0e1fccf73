package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/validation"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

type signupInput struct {
	Name            string `form:"name"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password"`
	Token           string `form:"token"`
}

// SignupGet renders the invite-signup page. The invite token and email arrive
// as query parameters from the invitation link.
func (h *AuthHandlers) SignupGet(c *gin.Context) {
	render.Page(c, http.StatusOK, "signup.html", view.SignupPage{
		FormPage:    view.FormPage{Frame: merchantFrame(c, "Create your account")},
		Form:        view.SignupForm{Email: c.Query("email")},
		InviteToken: c.Query("token"),
	})
}

func (h *AuthHandlers) SignupPost(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderSignup(c, http.StatusBadRequest, in, validation.FromBindError(err, &in), "")
		return
	}

	if msg := validation.CheckPassword(in.Password); msg != "" {
		h.renderSignup(c, http.StatusBadRequest, in, map[string]string{"password": msg}, "")
		return
	}

	res, err := h.auth.Signup(c.Request.Context(), api.SignupInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Token:    in.Token,
	})
	if err != nil {
		h.renderSignup(c, apperr.HTTPStatus(err), in, nil, apperr.PublicMessage(err))
		return
	}

	// Auto-login when the backend hands a token back with the signup.
	if res.Token != "" {
		sess, err := middleware.EnsureSession(c, h.sessCfg)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		sess.SetMerchant(res.Token, &res.User)
		if err := h.sessCfg.Store.Save(c.Request.Context(), sess); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		render.RedirectWithFlash(c, h.flash, "/customers", view.FlashSuccess, "Welcome aboard.")
		return
	}

	render.RedirectWithFlash(c, h.flash, "/login", view.FlashSuccess, "Account created. You can sign in now.")
}

func (h *AuthHandlers) renderSignup(c *gin.Context, status int, in signupInput, errs map[string]string, pageErr string) {
	render.Page(c, status, "signup.html", view.SignupPage{
		FormPage: view.FormPage{
			Frame:     merchantFrame(c, "Create your account"),
			Errors:    errs,
			PageError: pageErr,
		},
		Form:        view.SignupForm{Name: in.Name, Email: in.Email},
		InviteToken: in.Token,
	})
}
