package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anle/todo-api/auth"
	"github.com/anle/todo-api/events"
	"github.com/anle/todo-api/handlers"
	"github.com/anle/todo-api/router"
	"github.com/anle/todo-api/store"
	"github.com/gofiber/fiber/v2"
	_ "github.com/mattn/go-sqlite3"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		refresh_token TEXT
	);

	CREATE TABLE todos (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenService(testAccessSecret, testRefreshSecret, auth.AccessTokenTTL)
	hub := events.NewHub(log)
	h := handlers.New(store.NewUserStore(db), store.NewTodoStore(db), tokens, hub, log)

	app := fiber.New()
	router.SetupRoutes(app, h, tokens)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, mutate ...func(*http.Request)) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mutate {
		m(req)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// signupAndSignin registers the user and returns the access token and the
// refresh cookie from the sign-in response.
func signupAndSignin(t *testing.T, app *fiber.App, username, password string) (string, *http.Cookie) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
		"username": username, "password": password,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp.Body.Close()

	return signin(t, app, username, password)
}

func signin(t *testing.T, app *fiber.App, username, password string) (string, *http.Cookie) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/signin", map[string]string{
		"username": username, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, resp, &body)
	if body.AccessToken == "" {
		t.Fatal("signin returned empty accessToken")
	}

	var refreshCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == handlers.RefreshCookieName {
			refreshCookie = c
		}
	}
	if refreshCookie == nil {
		t.Fatal("signin did not set the refresh cookie")
	}

	return body.AccessToken, refreshCookie
}
