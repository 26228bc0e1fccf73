package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/cache"
	"metadologie.com/portal/internal/http/flash"
	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/validation"
	"metadologie.com/portal/internal/http/viewmap"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

type StoresHandler struct {
	admin *api.AdminService
	cache *cache.Cache
	flash *flash.Codec
}

func NewStoresHandler(admin *api.AdminService, qc *cache.Cache, flashCodec *flash.Codec) *StoresHandler {
	return &StoresHandler{admin: admin, cache: qc, flash: flashCodec}
}

// fetchUsers loads the full user listing through the query cache. Both the
// stores page and the admin dashboard read from the same key, so one fetch
// serves both within the TTL.
func fetchUsers(c *gin.Context, admin *api.AdminService, qc *cache.Cache) ([]api.User, error) {
	token, _ := middleware.TokenFor(c)
	return cache.Through(c.Request.Context(), qc,
		cache.Key("admin", "users", "limit=100&offset=0"),
		func(ctx context.Context) ([]api.User, error) {
			return admin.Users(ctx, token, 100, 0)
		})
}

func (h *StoresHandler) List(c *gin.Context) {
	page := view.StoresPage{
		Frame: adminFrame(c, "Stores"),
		Query: strings.TrimSpace(c.Query("q")),
	}

	users, err := fetchUsers(c, h.admin, h.cache)
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "admin_stores.html", page)
		return
	}

	rows := viewmap.StoreRows(users)
	if page.Query != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			if view.MatchFold(page.Query, r.Name, r.Email) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	window, pg := view.Paginate(rows, pageParam(c), defaultPageSize)
	page.Rows = window
	page.Pagination = pg

	render.Page(c, http.StatusOK, "admin_stores.html", page)
}

type inviteInput struct {
	Name  string `form:"name"`
	Email string `form:"email" binding:"required,email"`
}

// InvitePost sends a single-use invitation to a new merchant. The backend
// owns token issuance and email delivery.
func (h *StoresHandler) InvitePost(c *gin.Context) {
	var in inviteInput
	if err := c.ShouldBind(&in); err != nil {
		page := view.StoresPage{
			Frame:  adminFrame(c, "Stores"),
			Errors: validation.FromBindError(err, &in),
		}
		if users, uerr := fetchUsers(c, h.admin, h.cache); uerr == nil {
			window, pg := view.Paginate(viewmap.StoreRows(users), 1, defaultPageSize)
			page.Rows = window
			page.Pagination = pg
		}
		render.Page(c, http.StatusBadRequest, "admin_stores.html", page)
		return
	}

	token, _ := middleware.TokenFor(c)
	if err := h.admin.Invite(c.Request.Context(), token, in.Name, in.Email); err != nil {
		render.RedirectWithFlash(c, h.flash, "/admin/stores", view.FlashError, apperr.PublicMessage(err))
		return
	}

	// The list may include the invited merchant immediately.
	h.cache.Invalidate("admin", "users")

	render.RedirectWithFlash(c, h.flash, "/admin/stores", view.FlashSuccess, "Invitation sent to "+in.Email+".")
}

type updateStoreInput struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
}

func (h *StoresHandler) UpdatePost(c *gin.Context) {
	id := c.Param("id")

	var in updateStoreInput
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.flash, "/admin/stores", view.FlashError, "The submitted store data is invalid.")
		return
	}

	token, _ := middleware.TokenFor(c)
	if _, err := h.admin.UpdateUser(c.Request.Context(), token, id, map[string]any{
		"name":  in.Name,
		"email": in.Email,
	}); err != nil {
		render.RedirectWithFlash(c, h.flash, "/admin/stores", view.FlashError, apperr.PublicMessage(err))
		return
	}

	h.cache.Invalidate("admin", "users")

	render.RedirectWithFlash(c, h.flash, "/admin/stores", view.FlashSuccess, "Store updated.")
}
