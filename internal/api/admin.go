package api

import (
	"context"
	"net/url"
	"strconv"
)

// adminBase mirrors authBase for the admin router, plus merchant-scoped
// sub-resources under /users/{id} (god mode).
const adminBase = "/admin/auth"

type AdminService struct {
	c *Client
}

func NewAdminService(c *Client) *AdminService {
	return &AdminService{c: c}
}

func (s *AdminService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := s.c.Post(ctx, "", adminBase+"/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) Me(ctx context.Context, token string) (*User, error) {
	var out userResponse
	if err := s.c.Get(ctx, token, adminBase+"/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AdminService) UpdateProfile(ctx context.Context, token string, updates map[string]any) (*User, error) {
	var out userResponse
	if err := s.c.Put(ctx, token, adminBase+"/me", updates, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	var out struct{ Envelope }
	return s.c.Post(ctx, token, adminBase+"/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}, &out)
}

func (s *AdminService) ForgotPassword(ctx context.Context, email string) error {
	var out struct{ Envelope }
	return s.c.Post(ctx, "", adminBase+"/forgot-password", map[string]string{
		"email": email,
	}, &out)
}

// VerifyEmailChange confirms an email-change token from the verification link.
func (s *AdminService) VerifyEmailChange(ctx context.Context, token string) error {
	var out struct{ Envelope }
	params := url.Values{"token": {token}}
	return s.c.Get(ctx, "", adminBase+"/verify-email-change", params, &out)
}

// ---- User management ----

type usersResponse struct {
	Envelope
	Users []User `json:"users"`
}

func (s *AdminService) Users(ctx context.Context, token string, limit, offset int) ([]User, error) {
	params := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	var out usersResponse
	if err := s.c.Get(ctx, token, adminBase+"/users", params, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (s *AdminService) UserByID(ctx context.Context, token, id string) (*User, error) {
	var out userResponse
	if err := s.c.Get(ctx, token, adminBase+"/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, token, id string, updates map[string]any) (*User, error) {
	var out userResponse
	if err := s.c.Put(ctx, token, adminBase+"/users/"+id, updates, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AdminService) Invite(ctx context.Context, token, name, email string) error {
	var out struct{ Envelope }
	return s.c.Post(ctx, token, adminBase+"/invite", map[string]string{
		"name":  name,
		"email": email,
	}, &out)
}

// ---- God mode: merchant-scoped reads ----

func (s *AdminService) MerchantTransactions(ctx context.Context, token, merchantID string, params url.Values) ([]Transaction, error) {
	var out transactionsResponse
	if err := s.c.Get(ctx, token, adminBase+"/users/"+merchantID+"/transactions", params, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

func (s *AdminService) MerchantCustomers(ctx context.Context, token, merchantID string, params url.Values) ([]Customer, error) {
	var out customersResponse
	if err := s.c.Get(ctx, token, adminBase+"/users/"+merchantID+"/customers", params, &out); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

func (s *AdminService) MerchantConversations(ctx context.Context, token, merchantID string, params url.Values) ([]Conversation, error) {
	var out conversationsResponse
	if err := s.c.Get(ctx, token, adminBase+"/users/"+merchantID+"/conversations", params, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}
