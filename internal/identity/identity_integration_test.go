package identity_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/CaseLink/CL-Backend/internal/cases"
	"github.com/CaseLink/CL-Backend/internal/db"
	"github.com/CaseLink/CL-Backend/internal/identity"
	"github.com/CaseLink/CL-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	identity.Init()
	cases.Init()

	// Mount the auth routes the way main.go does.
	rateLimit := middleware.RateLimitMiddleware(1000, 1000)
	r := chi.NewRouter()
	r.Mount("/api/auth", identity.SetupRoutes(rateLimit))

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

func skipWithoutDB(t *testing.T) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
}

// newClientWithJar returns an http.Client with a fresh cookie jar that
// automatically carries cookies between requests.
func newClientWithJar(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func postJSON(t *testing.T, client *http.Client, path string, payload interface{}) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	resp, err := client.Post(testServer.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// signupUser registers a unique user through the API and registers cleanup.
// Returns the email and plaintext password.
func signupUser(t *testing.T, client *http.Client) (email, password string) {
	t.Helper()
	skipWithoutDB(t)

	suffix := uuid.New().String()[:8]
	email = fmt.Sprintf("testuser_%s@example.test", suffix)
	password = "TestPass123!"

	resp := postJSON(t, client, "/api/auth/signup", map[string]string{
		"email":     email,
		"password":  password,
		"firstName": "Integration",
		"lastName":  "Test",
		"specialty": "Cardiology",
	})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", resp.StatusCode, body)
	}

	t.Cleanup(func() {
		var account identity.Account
		if err := db.DB.First(&account, "email = ?", email).Error; err == nil {
			db.DB.Where("account_id = ?", account.ID).Delete(&identity.Session{})
			db.DB.Exec("DELETE FROM clinical.users WHERE id = ?", account.ID)
			db.DB.Delete(&account)
		}
	})

	return email, password
}

// TestSignupStartsSession verifies that signup returns 201 with the mirrored
// profile and a session cookie, and that /api/auth/user works immediately.
func TestSignupStartsSession(t *testing.T) {
	client := newClientWithJar(t)
	email, _ := signupUser(t, client)

	resp, err := client.Get(testServer.URL + "/api/auth/user")
	if err != nil {
		t.Fatalf("GET /api/auth/user: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	var profile cases.User
	if err := json.Unmarshal([]byte(body), &profile); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
	if profile.Email != email {
		t.Errorf("expected email %q, got %q", email, profile.Email)
	}
	if profile.Role != "doctor" {
		t.Errorf("expected default role doctor, got %q", profile.Role)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	client := newClientWithJar(t)
	email, password := signupUser(t, client)

	resp := postJSON(t, newClientWithJar(t), "/api/auth/signup", map[string]string{
		"email":     email,
		"password":  password,
		"firstName": "Other",
		"lastName":  "Person",
		"specialty": "Neurology",
	})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d; body: %s", resp.StatusCode, body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	client := newClientWithJar(t)
	email, _ := signupUser(t, client)

	resp := postJSON(t, newClientWithJar(t), "/api/auth/login", map[string]string{
		"email":    email,
		"password": "not-the-password",
	})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d; body: %s", resp.StatusCode, body)
	}
}

// TestSessionPersistsAcrossRequests verifies login followed by repeated
// /api/auth/user calls with the same cookie jar, simulating tab reloads.
func TestSessionPersistsAcrossRequests(t *testing.T) {
	signupClient := newClientWithJar(t)
	email, password := signupUser(t, signupClient)

	client := newClientWithJar(t)
	resp := postJSON(t, client, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d %s", resp.StatusCode, body)
	}

	for i := 0; i < 3; i++ {
		userResp, err := client.Get(testServer.URL + "/api/auth/user")
		if err != nil {
			t.Fatalf("GET /api/auth/user: %v", err)
		}
		userBody := readBody(t, userResp)
		if userResp.StatusCode != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d; body: %s", i, userResp.StatusCode, userBody)
		}
	}
}

// TestLogoutClearsSession verifies the full logout flow: signup, logout, then
// /api/auth/user returns 401.
func TestLogoutClearsSession(t *testing.T) {
	client := newClientWithJar(t)
	signupUser(t, client)

	resp, err := client.Post(testServer.URL+"/api/auth/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/auth/logout: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d; body: %s", resp.StatusCode, body)
	}

	userResp, err := client.Get(testServer.URL + "/api/auth/user")
	if err != nil {
		t.Fatalf("GET /api/auth/user after logout: %v", err)
	}
	userBody := readBody(t, userResp)
	if userResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d; body: %s", userResp.StatusCode, userBody)
	}
}
