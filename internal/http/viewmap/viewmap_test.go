package viewmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/pkg/view"
)

func TestTransactionRowDefaults(t *testing.T) {
	row := TransactionRow(api.Transaction{
		Status: api.FlexString("resolved"),
		Amount: api.FlexString("49.00"),
	})

	assert.Equal(t, view.BadgeResolved, row.Status.Kind)
	assert.Equal(t, "49.00", row.Amount)
	assert.Equal(t, "-", row.Description, "missing fields render as a dash")
	assert.Equal(t, "-", row.CustomerRef)
}

func TestStoreRowsFormatsDate(t *testing.T) {
	rows := StoreRows([]api.User{
		{ID: "u1", Name: "Store One", Email: "one@x.y", CreatedAt: "2026-02-03T09:00:00Z"},
		{ID: "u2", Name: "Store Two", Email: "two@x.y", CreatedAt: "not-a-date"},
	})

	assert.Equal(t, "2026-02-03", rows[0].CreatedAt)
	assert.Equal(t, "not-a-date", rows[1].CreatedAt, "unparseable dates pass through")
}

func TestSignupsByMonth(t *testing.T) {
	got := SignupsByMonth([]api.User{
		{CreatedAt: "2026-01-10T08:00:00Z"},
		{CreatedAt: "2026-01-22T08:00:00Z"},
		{CreatedAt: "2026-02-03T09:00:00Z"},
		{CreatedAt: "garbage"},
	})

	assert.Equal(t, []view.MonthCount{
		{Month: "2026-01", Count: 2},
		{Month: "2026-02", Count: 1},
	}, got)
}
