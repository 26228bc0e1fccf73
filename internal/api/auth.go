package api

import (
	"context"
	"net/url"
)

// authBase is where the backend mounts the merchant auth router.
const authBase = "/auth"

// AuthService is one function per merchant-facing backend endpoint: build the
// path, forward params verbatim, return the decoded payload.
type AuthService struct {
	c *Client
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

type LoginResult struct {
	Envelope
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := s.c.Post(ctx, "", authBase+"/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token,omitempty"` // invite token issued out-of-band
}

// Signup registers a merchant. When the backend returns a token the caller
// may auto-login with it.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*LoginResult, error) {
	var out LoginResult
	if err := s.c.Post(ctx, "", authBase+"/signup", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type userResponse struct {
	Envelope
	User User `json:"user"`
}

func (s *AuthService) Me(ctx context.Context, token string) (*User, error) {
	var out userResponse
	if err := s.c.Get(ctx, token, authBase+"/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, token string, updates map[string]any) (*User, error) {
	var out userResponse
	if err := s.c.Put(ctx, token, authBase+"/me", updates, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	var out struct{ Envelope }
	return s.c.Post(ctx, token, authBase+"/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}, &out)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email, storeURL string) error {
	var out struct{ Envelope }
	return s.c.Post(ctx, "", authBase+"/forgot-password", map[string]string{
		"email":    email,
		"storeUrl": storeURL,
	}, &out)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword, storeURL string) error {
	var out struct{ Envelope }
	return s.c.Post(ctx, "", authBase+"/reset-password", map[string]string{
		"token":       token,
		"newPassword": newPassword,
		"storeUrl":    storeURL,
	}, &out)
}

type transactionsResponse struct {
	Envelope
	Transactions []Transaction `json:"transactions"`
}

func (s *AuthService) Transactions(ctx context.Context, token string, params url.Values) ([]Transaction, error) {
	var out transactionsResponse
	if err := s.c.Get(ctx, token, authBase+"/transactions", params, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

type customersResponse struct {
	Envelope
	Customers []Customer `json:"customers"`
}

func (s *AuthService) Customers(ctx context.Context, token string, params url.Values) ([]Customer, error) {
	var out customersResponse
	if err := s.c.Get(ctx, token, authBase+"/customers", params, &out); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

type conversationsResponse struct {
	Envelope
	Conversations []Conversation `json:"conversations"`
}

func (s *AuthService) Conversations(ctx context.Context, token string, params url.Values) ([]Conversation, error) {
	var out conversationsResponse
	if err := s.c.Get(ctx, token, authBase+"/conversations", params, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}
