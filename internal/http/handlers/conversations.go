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

type ConversationsHandler struct {
	auth  *api.AuthService
	cache *cache.Cache
}

func NewConversationsHandler(auth *api.AuthService, qc *cache.Cache) *ConversationsHandler {
	return &ConversationsHandler{auth: auth, cache: qc}
}

func (h *ConversationsHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentMerchant(c)
	token, ok := middleware.TokenFor(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page := view.ConversationsPage{
		Frame: merchantFrame(c, "Conversations"),
		Query: strings.TrimSpace(c.Query("q")),
	}

	params := listParams()
	key := cache.Key("merchant", "conversations", user.Key(), cache.Params(params))
	convs, err := cache.Through(c.Request.Context(), h.cache, key,
		func(ctx context.Context) ([]api.Conversation, error) {
			return h.auth.Conversations(ctx, token, params)
		})
	if err != nil {
		page.LoadError = apperr.PublicMessage(err)
		render.Page(c, http.StatusOK, "conversations.html", page)
		return
	}

	rows := viewmap.ConversationRows(convs)
	rows = filterConversationRows(rows, page.Query)

	window, pg := view.Paginate(rows, pageParam(c), defaultPageSize)
	page.Rows = window
	page.Pagination = pg

	render.Page(c, http.StatusOK, "conversations.html", page)
}

func filterConversationRows(rows []view.ConversationRow, q string) []view.ConversationRow {
	if q == "" {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if view.MatchFold(q, r.Address, r.CustomerRef, r.Status.Label) {
			out = append(out, r)
		}
	}
	return out
}
