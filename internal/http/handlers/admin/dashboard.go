package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/cache"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/viewmap"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

// DashboardHandler renders the admin overview: store count and signups per
// month, both derived from the full user listing.
type DashboardHandler struct {
	admin *api.AdminService
	cache *cache.Cache
}

func NewDashboardHandler(admin *api.AdminService, qc *cache.Cache) *DashboardHandler {
	return &DashboardHandler{admin: admin, cache: qc}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	page := view.AdminDashboardPage{Frame: adminFrame(c, "Dashboard")}

	users, err := fetchUsers(c, h.admin, h.cache)
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "admin_dashboard.html", page)
		return
	}

	page.StoreCount = len(users)
	page.SignupsByMonth = viewmap.SignupsByMonth(users)
	render.Page(c, http.StatusOK, "admin_dashboard.html", page)
}
