package handlers

import (
	"context"
	"net/http"
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

type CustomersHandler struct {
	auth  *api.AuthService
	cache *cache.Cache
}

func NewCustomersHandler(auth *api.AuthService, qc *cache.Cache) *CustomersHandler {
	return &CustomersHandler{auth: auth, cache: qc}
}

func (h *CustomersHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentMerchant(c)
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page := view.CustomersPage{
		Frame: merchantFrame(c, "Customers"),
		Query: strings.TrimSpace(c.Query("q")),
	}

	params := listParams()
	key := cache.Key("merchant", "customers", user.Key(), cache.Params(params))
	customers, err := cache.Through(c.Request.Context(), h.cache, key,
		func(ctx context.Context) ([]api.Customer, error) {
			return h.auth.Customers(ctx, token, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "customers.html", page)
		return
	}

	rows := viewmap.CustomerRows(customers)
	rows = filterCustomerRows(rows, page.Query)

	window, pg := view.Paginate(rows, pageParam(c), defaultPageSize)
	page.Rows = window
	page.Pagination = pg

	render.Page(c, http.StatusOK, "customers.html", page)
}

func filterCustomerRows(rows []view.CustomerRow, q string) []view.CustomerRow {
	if q == "" {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if view.MatchFold(q, r.Name, r.Email, r.ID) {
			out = append(out, r)
		}
	}
	return out
}
