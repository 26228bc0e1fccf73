package admin

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/cache"
	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/http/viewmap"
	"metadologie.com/portal/internal/shared/apperr"
	"metadologie.com/portal/pkg/view"
)

// MerchantDataHandler serves the god-mode list pages: an admin viewing a
// specific merchant's transactions, customers or conversations. The merchant
// is selected by the merchantId query parameter; without it the page renders
// a "no store selected" placeholder and issues no backend request.
type MerchantDataHandler struct {
	admin *api.AdminService
	cache *cache.Cache
}

func NewMerchantDataHandler(admin *api.AdminService, qc *cache.Cache) *MerchantDataHandler {
	return &MerchantDataHandler{admin: admin, cache: qc}
}

func (h *MerchantDataHandler) Transactions(c *gin.Context) {
	frame, merchantID := godModeFrame(c, "Transactions")
	page := view.TransactionsPage{
		Frame: frame,
		Query: strings.TrimSpace(c.Query("q")),
	}
	if merchantID == "" {
		page.NoStore = true
		render.Page(c, http.StatusOK, "transactions.html", page)
		return
	}

	token, _ := middleware.TokenFor(c)
	params := listParams()
	txs, err := cache.Through(c.Request.Context(), h.cache,
		cache.Key("admin", "transactions", merchantID, cache.Params(params)),
		func(ctx context.Context) ([]api.Transaction, error) {
			return h.admin.MerchantTransactions(ctx, token, merchantID, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "transactions.html", page)
		return
	}

	rows := viewmap.TransactionRows(txs)
	if page.Query != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			if view.MatchFold(page.Query, r.Description, r.CustomerRef, r.Amount) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	window, pg := view.Paginate(rows, pageParam(c), defaultPageSize)
	page.Rows = window
	page.Pagination = pg

	if sel := c.Query("selected"); sel != "" {
		if i, err := strconv.Atoi(sel); err == nil && i >= 0 && i < len(rows) {
			page.Selected = &rows[i]
		}
	}

	render.Page(c, http.StatusOK, "transactions.html", page)
}

func (h *MerchantDataHandler) Customers(c *gin.Context) {
	frame, merchantID := godModeFrame(c, "Customers")
	page := view.CustomersPage{
		Frame: frame,
		Query: strings.TrimSpace(c.Query("q")),
	}
	if merchantID == "" {
		page.NoStore = true
		render.Page(c, http.StatusOK, "customers.html", page)
		return
	}

	token, _ := middleware.TokenFor(c)
	params := listParams()
	customers, err := cache.Through(c.Request.Context(), h.cache,
		cache.Key("admin", "customers", merchantID, cache.Params(params)),
		func(ctx context.Context) ([]api.Customer, error) {
			return h.admin.MerchantCustomers(ctx, token, merchantID, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "customers.html", page)
		return
	}

	rows := viewmap.CustomerRows(customers)
	if page.Query != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			if view.MatchFold(page.Query, r.Name, r.Email, r.ID) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	window, pg := view.Paginate(rows, pageParam(c), defaultPageSize)
	page.Rows = window
	page.Pagination = pg

	render.Page(c, http.StatusOK, "customers.html", page)
}

func (h *MerchantDataHandler) Conversations(c *gin.Context) {
	frame, merchantID := godModeFrame(c, "Conversations")
	page := view.ConversationsPage{
		Frame: frame,
		Query: strings.TrimSpace(c.Query("q")),
	}
	if merchantID == "" {
		page.NoStore = true
		render.Page(c, http.StatusOK, "conversations.html", page)
		return
	}

	token, _ := middleware.TokenFor(c)
	params := listParams()
	convs, err := cache.Through(c.Request.Context(), h.cache,
		cache.Key("admin", "conversations", merchantID, cache.Params(params)),
		func(ctx context.Context) ([]api.Conversation, error) {
			return h.admin.MerchantConversations(ctx, token, merchantID, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "conversations.html", page)
		return
	}

	rows := viewmap.ConversationRows(convs)
	if page.Query != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			if view.MatchFold(page.Query, r.Address, r.CustomerRef, r.Status.Label) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	window, pg := view.Paginate(rows, pageParam(c), defaultPageSize)
	page.Rows = window
	page.Pagination = pg

	render.Page(c, http.StatusOK, "conversations.html", page)
}
