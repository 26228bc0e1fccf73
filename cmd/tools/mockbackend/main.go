// mockbackend serves a canned version of the upstream API so the portal can
// be developed without live credentials. Every response uses the backend's
// envelope shape, and any login is accepted.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

func main() {
	addr := flag.String("addr", ":9090", "Listen address")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", login("merchant"))
	mux.HandleFunc("/admin/auth/login", login("admin"))
	mux.HandleFunc("/auth/me", me("merchant"))
	mux.HandleFunc("/admin/auth/me", me("admin"))

	mux.HandleFunc("/auth/transactions", listOf("transactions", transactions))
	mux.HandleFunc("/auth/customers", listOf("customers", customers))
	mux.HandleFunc("/auth/conversations", listOf("conversations", conversations))

	mux.HandleFunc("/admin/auth/users", listOf("users", users))
	mux.HandleFunc("/admin/auth/users/{id}", userByID)
	mux.HandleFunc("/admin/auth/users/{id}/transactions", listOf("transactions", transactions))
	mux.HandleFunc("/admin/auth/users/{id}/customers", listOf("customers", customers))
	mux.HandleFunc("/admin/auth/users/{id}/conversations", listOf("conversations", conversations))
	mux.HandleFunc("POST /admin/auth/invite", ok)
	mux.HandleFunc("POST /auth/change-password", ok)
	mux.HandleFunc("POST /admin/auth/change-password", ok)
	mux.HandleFunc("POST /auth/forgot-password", okPublic)
	mux.HandleFunc("POST /admin/auth/forgot-password", okPublic)
	mux.HandleFunc("POST /auth/reset-password", okPublic)
	mux.HandleFunc("GET /admin/auth/verify-email-change", okPublic)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "not found: " + r.URL.Path,
		})
	})

	log.Printf("mock backend listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, logRequests(mux)))
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.String())
		next.ServeHTTP(w, r)
	})
}

func login(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "error": "method not allowed"})
			return
		}
		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   fmt.Sprintf("mock-%s-token", role),
			"user":    mockUser(role, body.Email),
		})
	}
}

func me(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "missing token"})
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodPut:
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"user":    mockUser(role, ""),
			})
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "error": "method not allowed"})
		}
	}
}

// ok acknowledges a token-bearing write with an empty success envelope.
func ok(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "missing token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// okPublic is for endpoints reachable without a session token.
func okPublic(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func userByID(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "missing token"})
		return
	}
	id := r.PathValue("id")
	for _, u := range users {
		if u["_id"] == id {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "user not found"})
}

func listOf(key string, items []map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "missing token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			key:       items,
		})
	}
}

func mockUser(role, email string) map[string]any {
	if email == "" {
		email = role + "@example.com"
	}
	return map[string]any{
		"_id":       "usr_" + role,
		"name":      "Mock " + role,
		"email":     email,
		"role":      role,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var transactions = []map[string]any{
	{
		"id":                "txn_001",
		"status":            map[string]any{"value": "resolved", "label": "Resolved"},
		"created":           "2026-07-03T10:15:00Z",
		"description":       "Subscription renewal",
		"customerRef":       "cus_001",
		"amount":            "49.00",
		"paymentMethod":     "card",
		"externalReference": "ref_8812",
		"type":              map[string]any{"value": "charge", "label": "Charge"},
	},
	{
		"id":                "txn_002",
		"status":            "in-progress",
		"created":           "2026-07-04T16:40:00Z",
		"description":       "One-off payment",
		"customerRef":       "cus_002",
		"amount":            map[string]any{"amount": 125.5},
		"paymentMethod":     "transfer",
		"externalReference": "ref_8813",
		"type":              "charge",
	},
}

var customers = []map[string]any{
	{"id": "cus_001", "name": "Ada Fields", "email": "ada@example.com", "phone": "+491701234567", "lastOrder": "2026-07-01T08:00:00Z"},
	{"id": "cus_002", "firstName": "Ture", "lastName": "Borg", "emails": []string{"ture@example.com"}},
}

var conversations = []map[string]any{
	{"id": "cnv_001", "status": "resolved", "created": "2026-06-20T09:00:00Z", "updated": "2026-06-21T10:00:00Z", "address": "+491700000001", "customerRef": "cus_001"},
	{"id": "cnv_002", "status": "in-progress", "created": "2026-06-25T14:00:00Z", "updated": "2026-06-25T15:30:00Z", "address": "+491700000002", "customerRef": "cus_002"},
}

var users = []map[string]any{
	{"_id": "usr_m1", "name": "Store One", "email": "one@store.example", "role": "merchant", "createdAt": "2026-01-10T08:00:00Z"},
	{"_id": "usr_m2", "name": "Store Two", "email": "two@store.example", "role": "merchant", "createdAt": "2026-02-03T09:00:00Z"},
	{"_id": "usr_m3", "name": "Store Three", "email": "three@store.example", "role": "merchant", "createdAt": "2026-02-19T10:00:00Z"},
}
