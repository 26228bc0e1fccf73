package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/cache"
	"metadologie.com/portal/internal/http/flash"
	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/validation"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

type AuthHandlers struct {
	admin   *api.AdminService
	cache   *cache.Cache
	flash   *flash.Codec
	sessCfg middleware.SessionCfg
}

func NewAuthHandlers(admin *api.AdminService, qc *cache.Cache, flashCodec *flash.Codec, sessCfg middleware.SessionCfg) *AuthHandlers {
	return &AuthHandlers{admin: admin, cache: qc, flash: flashCodec, sessCfg: sessCfg}
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandlers) LoginGet(c *gin.Context) {
	if _, ok := middleware.CurrentAdmin(c); ok {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	render.Page(c, http.StatusOK, "admin_login.html", view.LoginPage{
		FormPage: view.FormPage{Frame: adminFrame(c, "Admin sign in")},
	})
}

func (h *AuthHandlers) LoginPost(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "admin_login.html", view.LoginPage{
			FormPage: view.FormPage{
				Frame:  adminFrame(c, "Admin sign in"),
				Errors: validation.FromBindError(err, &in),
			},
			Form: view.LoginForm{Email: in.Email},
		})
		return
	}

	res, err := h.admin.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		render.Page(c, http.StatusUnauthorized, "admin_login.html", view.LoginPage{
			FormPage: view.FormPage{
				Frame:     adminFrame(c, "Admin sign in"),
				PageError: apperr.PublicMessage(err),
			},
			Form: view.LoginForm{Email: in.Email},
		})
		return
	}

	sess, err := middleware.EnsureSession(c, h.sessCfg)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	sess.SetAdmin(res.Token, &res.User)
	if err := h.sessCfg.Store.Save(c.Request.Context(), sess); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	dest := "/admin/dashboard"
	if rt := middleware.SafeReturnTo(c.PostForm("return_to")); rt != "" {
		dest = rt
	}
	render.RedirectWithFlash(c, h.flash, dest, view.FlashSuccess, "Signed in.")
}

type forgotInput struct {
	Email string `form:"email" binding:"required,email"`
}

func (h *AuthHandlers) ForgotPasswordGet(c *gin.Context) {
	render.Page(c, http.StatusOK, "admin_forgot_password.html", view.ForgotPasswordPage{
		FormPage: view.FormPage{Frame: adminFrame(c, "Forgot password")},
	})
}

// ForgotPasswordPost masks whether the account exists, same as the merchant
// flow.
func (h *AuthHandlers) ForgotPasswordPost(c *gin.Context) {
	var in forgotInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "admin_forgot_password.html", view.ForgotPasswordPage{
			FormPage: view.FormPage{
				Frame:  adminFrame(c, "Forgot password"),
				Errors: validation.FromBindError(err, &in),
			},
			Form: view.ForgotPasswordForm{Email: in.Email},
		})
		return
	}

	_ = h.admin.ForgotPassword(c.Request.Context(), in.Email)

	render.Page(c, http.StatusOK, "admin_forgot_password.html", view.ForgotPasswordPage{
		FormPage: view.FormPage{Frame: adminFrame(c, "Forgot password")},
		Form:     view.ForgotPasswordForm{Email: in.Email},
		Sent:     true,
	})
}
