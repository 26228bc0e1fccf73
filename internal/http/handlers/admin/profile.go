package admin

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
	admin   *api.AdminService
	cache   *cache.Cache
	flash   *flash.Codec
	sessCfg middleware.SessionCfg
}

func NewProfileHandler(admin *api.AdminService, qc *cache.Cache, flashCodec *flash.Codec, sessCfg middleware.SessionCfg) *ProfileHandler {
	return &ProfileHandler{admin: admin, cache: qc, flash: flashCodec, sessCfg: sessCfg}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentAdmin(c)
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	page := view.ProfilePage{
		FormPage: view.FormPage{Frame: adminFrame(c, "Profile")},
	}

	me, err := cache.Through(c.Request.Context(), h.cache,
		cache.Key("admin", "me", user.Key()),
		func(ctx context.Context) (*api.User, error) {
			return h.admin.Me(ctx, token)
		})
	if err != nil {
		me = user
	}

	page.Form = view.ProfileForm{Name: me.Name, Email: me.Email}
	page.Role = me.Role
	render.Page(c, http.StatusOK, "admin_profile.html", page)
}

type profileInput struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
}

func (h *ProfileHandler) Post(c *gin.Context) {
	user, _ := middleware.CurrentAdmin(c)
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	var in profileInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "admin_profile.html", view.ProfilePage{
			FormPage: view.FormPage{
				Frame:  adminFrame(c, "Profile"),
				Errors: validation.FromBindError(err, &in),
			},
			Form: view.ProfileForm{Name: in.Name, Email: in.Email},
		})
		return
	}

	updated, err := h.admin.UpdateProfile(c.Request.Context(), token, map[string]any{
		"name":  in.Name,
		"email": in.Email,
	})
	if err != nil {
		render.Page(c, apperr.HTTPStatus(err), "admin_profile.html", view.ProfilePage{
			FormPage: view.FormPage{
				Frame:     adminFrame(c, "Profile"),
				PageError: apperr.PublicMessage(err),
			},
			Form: view.ProfileForm{Name: in.Name, Email: in.Email},
		})
		return
	}

	h.cache.Invalidate("admin", "me", user.Key())

	if sess, ok := middleware.GetSession(c); ok {
		sess.SetAdmin(token, updated)
		_ = h.sessCfg.Store.Save(c.Request.Context(), sess)
	}

	// An email change is not applied until the new address is verified, so
	// the success message covers both outcomes.
	render.RedirectWithFlash(c, h.flash, "/admin/profile", view.FlashSuccess, "Profile updated.")
}

type changePasswordInput struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=NewPassword"`
}

func (h *ProfileHandler) PasswordGet(c *gin.Context) {
	render.Page(c, http.StatusOK, "admin_password_change.html", view.PasswordChangePage{
		FormPage: view.FormPage{Frame: adminFrame(c, "Change password")},
	})
}

func (h *ProfileHandler) PasswordPost(c *gin.Context) {
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	var in changePasswordInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "admin_password_change.html", view.PasswordChangePage{
			FormPage: view.FormPage{
				Frame:  adminFrame(c, "Change password"),
				Errors: validation.FromBindError(err, &in),
			},
		})
		return
	}

	if msg := validation.CheckPassword(in.NewPassword); msg != "" {
		render.Page(c, http.StatusBadRequest, "admin_password_change.html", view.PasswordChangePage{
			FormPage: view.FormPage{
				Frame:  adminFrame(c, "Change password"),
				Errors: map[string]string{"new_password": msg},
			},
		})
		return
	}

	if err := h.admin.ChangePassword(c.Request.Context(), token, in.CurrentPassword, in.NewPassword); err != nil {
		render.Page(c, apperr.HTTPStatus(err), "admin_password_change.html", view.PasswordChangePage{
			FormPage: view.FormPage{
				Frame:     adminFrame(c, "Change password"),
				PageError: apperr.PublicMessage(err),
			},
		})
		return
	}

	render.RedirectWithFlash(c, h.flash, "/admin/profile", view.FlashSuccess, "Password changed.")
}
