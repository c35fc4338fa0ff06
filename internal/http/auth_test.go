package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)

	resp := s.login("demo@stockroom.test", "WrongPass1!")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}

	// malformed email short-circuits before the user lookup
	resp = s.login("not-an-email", "Passw0rd!")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}

func TestLoginAndMe(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)

	resp := s.login("demo@stockroom.test", "Passw0rd!")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if s.sid == "" {
		t.Fatal("sid cookie not set after login")
	}

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	resp = s.do("GET", "/api/v1/auth/me", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: want 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &me)
	if me.Email != "demo@stockroom.test" || me.Role != "USER" {
		t.Fatalf("bad me payload: %+v", me)
	}
}

func TestMeRequiresLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/auth/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)

	if resp := s.login("demo@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}
	if resp := s.do("POST", "/api/v1/auth/logout", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("logout failed: %d", resp.StatusCode)
	}

	// session unbound server-side: old sid no longer resolves a user
	resp := s.do("GET", "/api/v1/auth/me", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 after logout, got %d", resp.StatusCode)
	}
}
