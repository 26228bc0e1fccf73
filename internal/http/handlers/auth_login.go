package handlers

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
	auth    *api.AuthService
	cache   *cache.Cache
	flash   *flash.Codec
	sessCfg middleware.SessionCfg
}

func NewAuthHandlers(auth *api.AuthService, qc *cache.Cache, flashCodec *flash.Codec, sessCfg middleware.SessionCfg) *AuthHandlers {
	return &AuthHandlers{auth: auth, cache: qc, flash: flashCodec, sessCfg: sessCfg}
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Remember string `form:"remember"`
}

// LoginGet renders the merchant login page. A session that already holds a
// merchant slot goes straight to the default home.
func (h *AuthHandlers) LoginGet(c *gin.Context) {
	if _, ok := middleware.CurrentMerchant(c); ok {
		c.Redirect(http.StatusFound, "/customers")
		return
	}

	page := view.LoginPage{
		FormPage: view.FormPage{Frame: merchantFrame(c, "Sign in")},
		Verified: c.Query("verified") == "1",
	}
	if s, ok := middleware.GetSession(c); ok && s.RememberedEmail != "" {
		page.Form = view.LoginForm{Email: s.RememberedEmail, Remember: true}
	}
	render.Page(c, http.StatusOK, "login.html", page)
}

func (h *AuthHandlers) LoginPost(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "login.html", view.LoginPage{
			FormPage: view.FormPage{
				Frame:  merchantFrame(c, "Sign in"),
				Errors: validation.FromBindError(err, &in),
			},
			Form: view.LoginForm{Email: in.Email, Remember: in.Remember != ""},
		})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		render.Page(c, http.StatusUnauthorized, "login.html", view.LoginPage{
			FormPage: view.FormPage{
				Frame:     merchantFrame(c, "Sign in"),
				PageError: apperr.PublicMessage(err),
			},
			Form: view.LoginForm{Email: in.Email, Remember: in.Remember != ""},
		})
		return
	}

	sess, err := middleware.EnsureSession(c, h.sessCfg)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	sess.SetMerchant(res.Token, &res.User)
	if in.Remember != "" {
		sess.RememberedEmail = in.Email
	} else {
		sess.RememberedEmail = ""
	}
	if err := h.sessCfg.Store.Save(c.Request.Context(), sess); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	dest := "/customers"
	if rt := middleware.SafeReturnTo(c.PostForm("return_to")); rt != "" {
		dest = rt
	}
	render.RedirectWithFlash(c, h.flash, dest, view.FlashSuccess, "Signed in.")
}

// LogoutPost clears both credential slots, whichever one was active.
func (h *AuthHandlers) LogoutPost(c *gin.Context) {
	if sess, ok := middleware.GetSession(c); ok {
		sess.ClearAll()
		_ = h.sessCfg.Store.Delete(c.Request.Context(), sess.ID)
	}
	c.SetCookie(h.sessCfg.CookieName, "", -1, "/", "", h.sessCfg.Secure, true)

	render.RedirectWithFlash(c, h.flash, "/login", view.FlashInfo, "Signed out.")
}
