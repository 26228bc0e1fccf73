package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/cache"
	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/viewmap"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

type DashboardHandler struct {
	auth  *api.AuthService
	cache *cache.Cache
}

func NewDashboardHandler(auth *api.AuthService, qc *cache.Cache) *DashboardHandler {
	return &DashboardHandler{auth: auth, cache: qc}
}

// Get renders the merchant dashboard: stat cards aggregated over the same
// cached lists the individual pages use.
func (h *DashboardHandler) Get(c *gin.Context) {
	user, _ := middleware.CurrentMerchant(c)
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page := view.DashboardPage{Frame: merchantFrame(c, "Dashboard")}
	params := listParams()
	ctx := c.Request.Context()

	txs, err := cache.Through(ctx, h.cache,
		cache.Key("merchant", "transactions", user.Key(), cache.Params(params)),
		func(ctx context.Context) ([]api.Transaction, error) {
			return h.auth.Transactions(ctx, token, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "dashboard.html", page)
		return
	}

	customers, err := cache.Through(ctx, h.cache,
		cache.Key("merchant", "customers", user.Key(), cache.Params(params)),
		func(ctx context.Context) ([]api.Customer, error) {
			return h.auth.Customers(ctx, token, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "dashboard.html", page)
		return
	}

	convs, err := cache.Through(ctx, h.cache,
		cache.Key("merchant", "conversations", user.Key(), cache.Params(params)),
		func(ctx context.Context) ([]api.Conversation, error) {
			return h.auth.Conversations(ctx, token, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "dashboard.html", page)
		return
	}

	page.TransactionCount = len(txs)
	page.CustomerCount = len(customers)
	page.ConversationCount = len(convs)
	for _, cv := range convs {
		switch view.BadgeFor(cv.Status).Kind {
		case view.BadgeResolved:
			page.ResolvedCount++
		case view.BadgeInProgress:
			page.InProgressCount++
		}
	}

	recent := txs
	if len(recent) > 5 {
		recent = recent[:5]
	}
	page.Recent = viewmap.TransactionRows(recent)

	render.Page(c, http.StatusOK, "dashboard.html", page)
}
