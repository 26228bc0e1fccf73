package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/config"
	"metadologie.com/portal/internal/session"
)

// fakeBackend is a minimal upstream API: envelope responses, counters per
// endpoint so tests can assert whether a page fetched at all.
type fakeBackend struct {
	dataHits atomic.Int64
	meHits   atomic.Int64
	srv      *httptest.Server

	mu          sync.Mutex
	profileName string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{profileName: "Ada"}
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK,
			`{"success":true,"token":"m_tok","user":{"_id":"u1","name":"Ada","email":"ada@store.example","role":"merchant"}}`)
	})
	mux.HandleFunc("/admin/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK,
			`{"success":true,"token":"a_tok","user":{"_id":"adm1","name":"Root","email":"root@example.com","role":"admin"}}`)
	})

	profileBody := func(name string) string {
		return fmt.Sprintf(`{"success":true,"user":{"_id":"u1","name":%q,"email":"ada@store.example","role":"merchant"}}`, name)
	}
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		fb.meHits.Add(1)
		fb.mu.Lock()
		name := fb.profileName
		fb.mu.Unlock()
		writeJSON(w, http.StatusOK, profileBody(name))
	})
	mux.HandleFunc("PUT /auth/me", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		fb.mu.Lock()
		fb.profileName = in.Name
		fb.mu.Unlock()
		writeJSON(w, http.StatusOK, profileBody(in.Name))
	})

	transactionsBody := `{"success":true,"transactions":[
		{"id":"txn_1","status":{"value":"resolved","label":"Resolved"},"created":"2026-07-03T10:15:00Z",
		 "description":"Subscription renewal","customerRef":"cus_1","amount":"49.00","paymentMethod":"card","type":"charge"}
	]}`

	mux.HandleFunc("/auth/transactions", func(w http.ResponseWriter, r *http.Request) {
		fb.dataHits.Add(1)
		writeJSON(w, http.StatusOK, transactionsBody)
	})
	mux.HandleFunc("/auth/customers", func(w http.ResponseWriter, r *http.Request) {
		fb.dataHits.Add(1)
		writeJSON(w, http.StatusOK, `{"success":true,"customers":[{"id":"cus_1","name":"Ada Fields","email":"ada@example.com"}]}`)
	})
	mux.HandleFunc("/auth/conversations", func(w http.ResponseWriter, r *http.Request) {
		fb.dataHits.Add(1)
		writeJSON(w, http.StatusOK, `{"success":true,"conversations":[{"status":"in-progress","address":"+4917000001","customerRef":"cus_1"}]}`)
	})
	mux.HandleFunc("/admin/auth/users/m1/transactions", func(w http.ResponseWriter, r *http.Request) {
		fb.dataHits.Add(1)
		writeJSON(w, http.StatusOK, transactionsBody)
	})
	mux.HandleFunc("/admin/auth/users", func(w http.ResponseWriter, r *http.Request) {
		fb.dataHits.Add(1)
		writeJSON(w, http.StatusOK, `{"success":true,"users":[{"_id":"m1","name":"Store One","email":"one@store.example","createdAt":"2026-01-10T08:00:00Z"}]}`)
	})

	fb.srv = httptest.NewServer(mux)
	t.Cleanup(fb.srv.Close)
	return fb
}

func newTestRouter(t *testing.T, backendURL string) (*gin.Engine, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Addr:           ":0",
		APIBaseURL:     backendURL,
		CookieSecret:   []byte("0123456789abcdef0123456789abcdef"),
		SecureCookie:   false,
		SessionTTL:     time.Hour,
		RequestTimeout: 2 * time.Second,
	}
	store := session.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, cfg, store), store
}

// seedSession creates a stored session with the given slots and returns its ID.
func seedSession(t *testing.T, store *session.MemoryStore, set func(*session.Session)) string {
	t.Helper()
	s, err := store.Create(context.Background(), time.Hour)
	require.NoError(t, err)
	set(s)
	require.NoError(t, store.Save(context.Background(), s))
	return s.ID
}

func merchantUser() *api.User {
	return &api.User{ID: "u1", Name: "Ada", Email: "ada@store.example", Role: "merchant"}
}

func adminUser() *api.User {
	return &api.User{ID: "adm1", Name: "Root", Email: "root@example.com", Role: "admin"}
}

func doPost(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	form.Set("_csrf", "testtoken")
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "portal_csrf", Value: "testtoken"})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginCreatesMerchantSession(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	w := doPost(r, "/login", url.Values{
		"email":    {"ada@store.example"},
		"password": {"Sup3r-secret"},
		"remember": {"1"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/customers", w.Header().Get("Location"))

	var sessionID string
	for _, c := range w.Result().Cookies() {
		if c.Name == "portal_session" {
			sessionID = c.Value
		}
	}
	require.NotEmpty(t, sessionID, "login must set the session cookie")

	s, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "m_tok", s.MerchantToken)
	assert.Empty(t, s.AdminToken)
	assert.Equal(t, "ada@store.example", s.RememberedEmail)
}

func TestAdminLoginFillsAdminSlot(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	w := doPost(r, "/admin/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"Sup3r-secret"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	var sessionID string
	for _, c := range w.Result().Cookies() {
		if c.Name == "portal_session" {
			sessionID = c.Value
		}
	}
	require.NotEmpty(t, sessionID)

	s, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "a_tok", s.AdminToken)
	assert.Empty(t, s.MerchantToken, "admin login must not touch the merchant slot")
}

func TestRequireMerchantRedirectsToLogin(t *testing.T) {
	fb := newFakeBackend(t)
	r, _ := newTestRouter(t, fb.srv.URL)

	w := doGet(r, "/transactions")

	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/login?return_to="), "got %q", loc)
	assert.Contains(t, loc, url.QueryEscape("/transactions"))
}

func TestMerchantTransactionsPage(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	sid := seedSession(t, store, func(s *session.Session) {
		s.SetMerchant("m_tok", merchantUser())
	})
	cookie := &http.Cookie{Name: "portal_session", Value: sid}

	w := doGet(r, "/transactions", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Subscription renewal")

	// Second read within the TTL must come from the query cache.
	w = doGet(r, "/transactions", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), fb.dataHits.Load())
}

func TestGodModeWithoutMerchantIDSkipsFetch(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	sid := seedSession(t, store, func(s *session.Session) {
		s.SetAdmin("a_tok", adminUser())
	})
	cookie := &http.Cookie{Name: "portal_session", Value: sid}

	w := doGet(r, "/admin/transactions", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No store selected")
	assert.Equal(t, int64(0), fb.dataHits.Load(), "no merchantId means no backend call")
}

func TestGodModeWithMerchantID(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	sid := seedSession(t, store, func(s *session.Session) {
		s.SetAdmin("a_tok", adminUser())
	})
	cookie := &http.Cookie{Name: "portal_session", Value: sid}

	w := doGet(r, "/admin/transactions?merchantId=m1", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Subscription renewal")
	assert.Contains(t, body, "Viewing store m1")
	assert.Equal(t, int64(1), fb.dataHits.Load())
}

func TestRequireAdminRejectsMerchantOnlySession(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	sid := seedSession(t, store, func(s *session.Session) {
		s.SetMerchant("m_tok", merchantUser())
	})

	w := doGet(r, "/admin/stores", &http.Cookie{Name: "portal_session", Value: sid})
	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/admin/login?return_to="))
}

func TestLogoutClearsBothSlots(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	sid := seedSession(t, store, func(s *session.Session) {
		s.SetMerchant("m_tok", merchantUser())
		s.SetAdmin("a_tok", adminUser())
	})

	w := doPost(r, "/logout", url.Values{}, &http.Cookie{Name: "portal_session", Value: sid})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	_, err := store.Get(context.Background(), sid)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	fb := newFakeBackend(t)
	r, _ := newTestRouter(t, fb.srv.URL)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader("email=a%40b.c&password=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminLoginRejectsOffsiteReturnTo(t *testing.T) {
	fb := newFakeBackend(t)
	r, _ := newTestRouter(t, fb.srv.URL)

	w := doPost(r, "/admin/login", url.Values{
		"email":     {"root@example.com"},
		"password":  {"Sup3r-secret"},
		"return_to": {"//evil.example/phish"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"),
		"protocol-relative return_to must fall back to the default destination")

	w = doPost(r, "/admin/login", url.Values{
		"email":     {"root@example.com"},
		"password":  {"Sup3r-secret"},
		"return_to": {"/admin/stores"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/stores", w.Header().Get("Location"))
}

func TestSearchWithNoMatchesUsesCachedFetch(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	sid := seedSession(t, store, func(s *session.Session) {
		s.SetMerchant("m_tok", merchantUser())
	})
	cookie := &http.Cookie{Name: "portal_session", Value: sid}

	w := doGet(r, "/transactions", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/transactions?q=zzz-no-such-entry", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "No transactions found.")
	assert.NotContains(t, body, "Subscription renewal")
	assert.Equal(t, int64(1), fb.dataHits.Load(), "filtering is client-side over the cached set")
}

func TestProfileUpdateInvalidatesCachedProfile(t *testing.T) {
	fb := newFakeBackend(t)
	r, store := newTestRouter(t, fb.srv.URL)

	sid := seedSession(t, store, func(s *session.Session) {
		s.SetMerchant("m_tok", merchantUser())
	})
	cookie := &http.Cookie{Name: "portal_session", Value: sid}

	w := doGet(r, "/profile", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada")

	// Second read within the TTL stays on the cached profile.
	w = doGet(r, "/profile", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), fb.meHits.Load())

	w = doPost(r, "/profile", url.Values{
		"name":  {"Grace"},
		"email": {"ada@store.example"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))

	w = doGet(r, "/profile", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Grace")
	assert.Equal(t, int64(2), fb.meHits.Load(), "the update must evict the cached profile")
}

func TestUnknownPathRendersErrorPage(t *testing.T) {
	fb := newFakeBackend(t)
	r, _ := newTestRouter(t, fb.srv.URL)

	w := doGet(r, "/no-such-page")
	require.Equal(t, http.StatusNotFound, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "404")
	assert.Contains(t, body, "The page you requested does not exist.")
}

func TestStaticStylesheet(t *testing.T) {
	fb := newFakeBackend(t)
	r, _ := newTestRouter(t, fb.srv.URL)

	w := doGet(r, "/static/app.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}
