package handlers

import (
	"context"
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

type ProfileHandler struct {
	auth    *api.AuthService
	cache   *cache.Cache
	flash   *flash.Codec
	sessCfg middleware.SessionCfg
}

func NewProfileHandler(auth *api.AuthService, qc *cache.Cache, flashCodec *flash.Codec, sessCfg middleware.SessionCfg) *ProfileHandler {
	return &ProfileHandler{auth: auth, cache: qc, flash: flashCodec, sessCfg: sessCfg}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentMerchant(c)
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page := view.ProfilePage{
		FormPage: view.FormPage{Frame: merchantFrame(c, "Profile")},
	}

	me, err := cache.Through(c.Request.Context(), h.cache,
		cache.Key("merchant", "me", user.Key()),
		func(ctx context.Context) (*api.User, error) {
			return h.auth.Me(ctx, token)
		})
	if err != nil {
		// Fall back to the session copy; the form stays editable.
		me = user
	}

	page.Form = view.ProfileForm{Name: me.Name, Email: me.Email}
	page.Role = me.Role
	render.Page(c, http.StatusOK, "profile.html", page)
}

type profileInput struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
}

func (h *ProfileHandler) Post(c *gin.Context) {
	user, _ := middleware.CurrentMerchant(c)
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var in profileInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "profile.html", view.ProfilePage{
			FormPage: view.FormPage{
				Frame:  merchantFrame(c, "Profile"),
				Errors: validation.FromBindError(err, &in),
			},
			Form: view.ProfileForm{Name: in.Name, Email: in.Email},
		})
		return
	}

	updated, err := h.auth.UpdateProfile(c.Request.Context(), token, map[string]any{
		"name":  in.Name,
		"email": in.Email,
	})
	if err != nil {
		render.Page(c, apperr.HTTPStatus(err), "profile.html", view.ProfilePage{
			FormPage: view.FormPage{
				Frame:     merchantFrame(c, "Profile"),
				PageError: apperr.PublicMessage(err),
			},
			Form: view.ProfileForm{Name: in.Name, Email: in.Email},
		})
		return
	}

	// The write went through: stale profile reads must refetch.
	h.cache.Invalidate("merchant", "me", user.Key())

	// Keep the session's cached principal in sync as well.
	if sess, ok := middleware.GetSession(c); ok {
		sess.SetMerchant(token, updated)
		_ = h.sessCfg.Store.Save(c.Request.Context(), sess)
	}

	render.RedirectWithFlash(c, h.flash, "/profile", view.FlashSuccess, "Profile updated.")
}

type changePasswordInput struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=NewPassword"`
}

func (h *ProfileHandler) PasswordGet(c *gin.Context) {
	render.Page(c, http.StatusOK, "password_change.html", view.PasswordChangePage{
		FormPage: view.FormPage{Frame: merchantFrame(c, "Change password")},
	})
}

func (h *ProfileHandler) PasswordPost(c *gin.Context) {
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var in changePasswordInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "password_change.html", view.PasswordChangePage{
			FormPage: view.FormPage{
				Frame:  merchantFrame(c, "Change password"),
				Errors: validation.FromBindError(err, &in),
			},
		})
		return
	}

	// Rejected here; no request reaches the backend for a weak password.
	if msg := validation.CheckPassword(in.NewPassword); msg != "" {
		render.Page(c, http.StatusBadRequest, "password_change.html", view.PasswordChangePage{
			FormPage: view.FormPage{
				Frame:  merchantFrame(c, "Change password"),
				Errors: map[string]string{"new_password": msg},
			},
		})
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), token, in.CurrentPassword, in.NewPassword); err != nil {
		render.Page(c, apperr.HTTPStatus(err), "password_change.html", view.PasswordChangePage{
			FormPage: view.FormPage{
				Frame:     merchantFrame(c, "Change password"),
				PageError: apperr.PublicMessage(err),
			},
		})
		return
	}

	render.RedirectWithFlash(c, h.flash, "/profile", view.FlashSuccess, "Password changed.")
}
