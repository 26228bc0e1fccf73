package handlers

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

type TransactionsHandler struct {
	auth  *api.AuthService
	cache *cache.Cache
}

func NewTransactionsHandler(auth *api.AuthService, qc *cache.Cache) *TransactionsHandler {
	return &TransactionsHandler{auth: auth, cache: qc}
}

func (h *TransactionsHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentMerchant(c) // RequireMerchant guarantees
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page := view.TransactionsPage{
		Frame: merchantFrame(c, "Transactions"),
		Query: strings.TrimSpace(c.Query("q")),
	}

	params := listParams()
	key := cache.Key("merchant", "transactions", user.Key(), cache.Params(params))
	txs, err := cache.Through(c.Request.Context(), h.cache, key,
		func(ctx context.Context) ([]api.Transaction, error) {
			return h.auth.Transactions(ctx, token, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "transactions.html", page)
		return
	}

	rows := viewmap.TransactionRows(txs)
	rows = filterTransactionRows(rows, page.Query)

	window, pg := view.Paginate(rows, pageParam(c), defaultPageSize)
	page.Rows = window
	page.Pagination = pg

	// Row detail: the selected index points into the filtered set.
	if sel := c.Query("selected"); sel != "" {
		if i, err := strconv.Atoi(sel); err == nil && i >= 0 && i < len(rows) {
			page.Selected = &rows[i]
		}
	}

	render.Page(c, http.StatusOK, "transactions.html", page)
}

func filterTransactionRows(rows []view.TransactionRow, q string) []view.TransactionRow {
	if q == "" {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if view.MatchFold(q, r.Description, r.CustomerRef, r.Amount) {
			out = append(out, r)
		}
	}
	return out
}
