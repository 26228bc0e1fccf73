package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"metadologie.com/portal/internal/shared/apperr"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"user":{"_id":"u1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	svc := NewAuthService(c)

	_, err := svc.Me(context.Background(), "tok_abc")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok_abc", gotAuth)
}

func TestClientMapsErrorStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   apperr.Kind
	}{
		{http.StatusBadRequest, apperr.Invalid},
		{http.StatusUnauthorized, apperr.Unauthorized},
		{http.StatusForbidden, apperr.Forbidden},
		{http.StatusNotFound, apperr.NotFound},
		{http.StatusConflict, apperr.Conflict},
		{http.StatusInternalServerError, apperr.Unavailable},
		{http.StatusBadGateway, apperr.Unavailable},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"success":false,"error":"nope"}`))
		}))

		c := NewClient(srv.URL, time.Second, testLogger())
		svc := NewAuthService(c)
		_, err := svc.Me(context.Background(), "tok")
		srv.Close()

		if assert.Error(t, err, "status %d", tc.status) {
			ae, ok := apperr.As(err)
			assert.True(t, ok)
			assert.Equal(t, tc.kind, ae.Kind, "status %d", tc.status)
		}
	}
}

func TestClientRejectsFailedEnvelope(t *testing.T) {
	// 200 OK with success=false still counts as a failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	svc := NewAuthService(c)

	_, err := svc.Login(context.Background(), "a@b.c", "wrong")
	if assert.Error(t, err) {
		ae, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.Invalid, ae.Kind)
		assert.Equal(t, "invalid credentials", apperr.PublicMessage(err))
	}
}

func TestClientUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second, testLogger())
	svc := NewAuthService(c)

	_, err := svc.Me(context.Background(), "tok")
	if assert.Error(t, err) {
		ae, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.Unavailable, ae.Kind)
	}
}

func TestClientForwardsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"transactions":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	svc := NewAuthService(c)

	_, err := svc.Transactions(context.Background(), "tok", url.Values{"limit": {"100"}})
	assert.NoError(t, err)
	assert.Equal(t, "limit=100", gotQuery)
}
