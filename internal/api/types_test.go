package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"string", `"resolved"`, "resolved"},
		{"number", `125.5`, "125.5"},
		{"integer", `42`, "42"},
		{"null", `null`, ""},
		{"object value", `{"value":"charge","label":"Charge"}`, "charge"},
		{"object label only", `{"label":"In Progress"}`, "In Progress"},
		{"object name", `{"name":"card"}`, "card"},
		{"object numeric amount", `{"amount":49.9}`, "49.9"},
		{"object numeric value", `{"value":12}`, "12"},
		{"object id fallback", `{"id":"pm_123"}`, "pm_123"},
		{"object type fallback", `{"type":"refund"}`, "refund"},
		{"empty object", `{}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f Flex
			err := json.Unmarshal([]byte(tc.in), &f)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, f.String())
		})
	}
}

func TestFlexMarshalRoundTrip(t *testing.T) {
	b, err := json.Marshal(FlexString("card"))
	assert.NoError(t, err)
	assert.Equal(t, `"card"`, string(b))
}

func TestUserKey(t *testing.T) {
	withID := User{ID: "usr_1", LegacyID: "legacy_1", Email: "a@b.c"}
	assert.Equal(t, "usr_1", withID.Key())

	legacyOnly := User{LegacyID: "legacy_1", Email: "a@b.c"}
	assert.Equal(t, "legacy_1", legacyOnly.Key())
}

func TestCustomerDisplayFallbacks(t *testing.T) {
	named := Customer{Name: "Ada Fields", FirstName: "ignored"}
	assert.Equal(t, "Ada Fields", named.DisplayName())

	split := Customer{FirstName: "Ture", LastName: "Borg"}
	assert.Equal(t, "Ture Borg", split.DisplayName())

	anon := Customer{}
	assert.Equal(t, "", anon.DisplayName())

	direct := Customer{Email: "a@b.c", Emails: []string{"x@y.z"}}
	assert.Equal(t, "a@b.c", direct.DisplayEmail())

	listed := Customer{Emails: []string{"x@y.z", "second@y.z"}}
	assert.Equal(t, "x@y.z", listed.DisplayEmail())

	none := Customer{}
	assert.Equal(t, "", none.DisplayEmail())
}

func TestTransactionDecode(t *testing.T) {
	raw := `{
		"id": "txn_1",
		"status": {"value": "resolved", "label": "Resolved"},
		"created": "2026-07-03T10:15:00Z",
		"description": "Subscription renewal",
		"customerRef": "cus_1",
		"amount": 49,
		"paymentMethod": "card",
		"type": "charge"
	}`

	var tx Transaction
	assert.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, "resolved", tx.Status.String())
	assert.Equal(t, "49", tx.Amount.String())
	assert.Equal(t, "card", tx.PaymentMethod.String())
	assert.Equal(t, "charge", tx.Type.String())
}
