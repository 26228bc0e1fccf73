// Package viewmap maps backend API records onto template view models. Field
// normalization (object-or-string values, name/email fallbacks) already
// happened at the API boundary; this layer only applies display defaults and
// badge classification.
package viewmap

import (
	"sort"
	"time"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/pkg/view"
)

func TransactionRow(t api.Transaction) view.TransactionRow {
	return view.TransactionRow{
		Status:            view.BadgeFor(view.Display(t.Status.String())),
		Created:           view.Display(t.Created),
		Description:       view.Display(t.Description),
		CustomerRef:       view.Display(t.CustomerRef),
		Amount:            view.Display(t.Amount.String()),
		PaymentMethod:     view.Display(t.PaymentMethod.String()),
		ExternalReference: view.Display(t.ExternalReference),
		Type:              view.BadgeFor(view.Display(t.Type.String())),
	}
}

func TransactionRows(txs []api.Transaction) []view.TransactionRow {
	out := make([]view.TransactionRow, 0, len(txs))
	for _, t := range txs {
		out = append(out, TransactionRow(t))
	}
	return out
}

func CustomerRows(customers []api.Customer) []view.CustomerRow {
	out := make([]view.CustomerRow, 0, len(customers))
	for _, cu := range customers {
		out = append(out, view.CustomerRow{
			ID:        view.Display(cu.Key()),
			Name:      view.Display(cu.DisplayName()),
			Email:     view.Display(cu.DisplayEmail()),
			Phone:     view.Display(cu.Phone),
			Avatar:    cu.Avatar,
			LastOrder: view.Display(cu.LastOrder),
		})
	}
	return out
}

func ConversationRows(convs []api.Conversation) []view.ConversationRow {
	out := make([]view.ConversationRow, 0, len(convs))
	for _, cv := range convs {
		out = append(out, view.ConversationRow{
			Status:      view.BadgeFor(view.Display(cv.Status)),
			Created:     view.Display(cv.Created),
			Updated:     view.Display(cv.Updated),
			Address:     view.Display(cv.Address),
			CustomerRef: view.Display(cv.CustomerRef),
			Expiration:  view.Display(cv.Expiration),
		})
	}
	return out
}

func StoreRows(users []api.User) []view.StoreRow {
	out := make([]view.StoreRow, 0, len(users))
	for _, u := range users {
		out = append(out, view.StoreRow{
			ID:        u.Key(),
			Name:      view.Display(u.Name),
			Email:     view.Display(u.Email),
			CreatedAt: formatDate(u.CreatedAt),
		})
	}
	return out
}

func formatDate(raw string) string {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format("2006-01-02")
	}
	return view.Display(raw)
}

// SignupsByMonth buckets store records by creation month, skipping records
// whose createdAt does not parse.
func SignupsByMonth(users []api.User) []view.MonthCount {
	counts := map[string]int{}
	months := []string{}
	for _, u := range users {
		t, err := time.Parse(time.RFC3339, u.CreatedAt)
		if err != nil {
			continue
		}
		m := t.Format("2006-01")
		if _, seen := counts[m]; !seen {
			months = append(months, m)
		}
		counts[m]++
	}
	sort.Strings(months)
	out := make([]view.MonthCount, 0, len(months))
	for _, m := range months {
		out = append(out, view.MonthCount{Month: m, Count: counts[m]})
	}
	return out
}
