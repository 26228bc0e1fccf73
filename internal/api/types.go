package api

import (
	"encoding/json"
	"strings"
)

// Envelope is the response shape every backend endpoint wraps its payload in.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (e Envelope) ok() bool { return e.Success }

func (e Envelope) failure() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Details
}

// Flex is a field the backend sends either as a scalar or as an object like
// {value, label} / {name} / {amount} / {id, type}, depending on the upstream
// source. It is normalized here, once, at the service boundary.
type Flex struct {
	value string
}

func FlexString(s string) Flex { return Flex{value: s} }

func (f Flex) String() string { return f.value }

func (f *Flex) UnmarshalJSON(b []byte) error {
	t := strings.TrimSpace(string(b))
	if t == "null" || t == "" {
		f.value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.value = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		f.value = n.String()
		return nil
	}

	var obj struct {
		Value  json.RawMessage `json:"value"`
		Label  string          `json:"label"`
		Name   string          `json:"name"`
		Amount json.RawMessage `json:"amount"`
		ID     string          `json:"id"`
		Type   string          `json:"type"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}

	for _, cand := range []string{scalar(obj.Value), obj.Label, obj.Name, scalar(obj.Amount), obj.ID, obj.Type} {
		if cand != "" {
			f.value = cand
			return nil
		}
	}
	f.value = ""
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

func scalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// User is the session principal and, for admins, the merchant/store record.
type User struct {
	ID        string `json:"_id"`
	LegacyID  string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func (u User) Key() string {
	if u.ID != "" {
		return u.ID
	}
	return u.LegacyID
}

type Transaction struct {
	ID                string `json:"id"`
	Status            Flex   `json:"status"`
	Created           string `json:"created"`
	Description       string `json:"description"`
	CustomerRef       string `json:"customerRef"`
	Amount            Flex   `json:"amount"`
	PaymentMethod     Flex   `json:"paymentMethod"`
	ExternalReference string `json:"externalReference"`
	Type              Flex   `json:"type"`
}

// Customer field names vary by upstream source (Shopify vs WooCommerce);
// display accessors fall back across the synonymous fields.
type Customer struct {
	ID        string   `json:"id"`
	Ref       string   `json:"ref"`
	Name      string   `json:"name"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Emails    []string `json:"emails"`
	Phone     string   `json:"phone"`
	Avatar    string   `json:"avatar"`
	LastOrder string   `json:"lastOrder"`
}

func (c Customer) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Ref
}

func (c Customer) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Customer) DisplayEmail() string {
	if c.Email != "" {
		return c.Email
	}
	if len(c.Emails) > 0 {
		return c.Emails[0]
	}
	return ""
}

type Conversation struct {
	Status      string `json:"status"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
	Address     string `json:"address"`
	CustomerRef string `json:"customerRef"`
	Expiration  string `json:"expiration"`
}
