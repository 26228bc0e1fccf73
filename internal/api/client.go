package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"metadologie.com/portal/internal/shared/apperr"
)

// Client is the single configured request client for the backend API.
// It attaches the caller-selected bearer token and maps the uniform
// {success, error, details} envelope onto apperr kinds. No retries, no
// redirects; each page decides whether a failed call becomes an error
// panel or a flash.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) Get(ctx context.Context, token, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, token, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, token, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, token, path, nil, body, out)
}

// envelope is satisfied by any response struct embedding Envelope.
type envelope interface {
	ok() bool
	failure() string
}

func (c *Client) do(ctx context.Context, method, token, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return apperr.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelWarn, "api_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("err", err),
		)
		return apperr.UnavailableErr("The service is unreachable. Please try again.")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(err)
	}

	if resp.StatusCode >= 400 {
		var env Envelope
		_ = json.Unmarshal(raw, &env)
		c.log.LogAttrs(ctx, slog.LevelWarn, "api_error_response",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("api_error", env.failure()),
		)
		return apperr.FromStatus(resp.StatusCode, env.failure(),
			fmt.Errorf("api: %s %s: status %d", method, path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Wrap(fmt.Errorf("api: %s %s: decode: %w", method, path, err))
	}
	if env, isEnv := out.(envelope); isEnv && !env.ok() {
		msg := env.failure()
		if msg == "" {
			msg = "The request could not be completed."
		}
		return apperr.InvalidErr(msg, nil)
	}
	return nil
}
