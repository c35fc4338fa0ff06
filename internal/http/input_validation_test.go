package handlers_test

import (
	"net/http"
	"testing"
)

func TestValidationBadInputs(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)
	if resp := s.login("demo@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	// availability without productId
	resp := s.do("GET", "/api/v1/availability", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing productId expected 400, got %d", resp.StatusCode)
	}

	// search with invalid chars
	resp = s.do("GET", "/api/v1/products/search?q=%3Cscript%3E", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad search expected 400, got %d", resp.StatusCode)
	}

	// product with negative price
	resp = s.do("POST", "/api/v1/products", map[string]any{
		"name": "Broken", "category": "misc", "price": -5.0,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative price expected 400, got %d", resp.StatusCode)
	}

	// sale with zero qty
	resp = s.do("POST", "/api/v1/sales", map[string]any{
		"productId": "prd-kb-001", "qty": 0, "buyerName": "Zero",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero qty expected 400, got %d", resp.StatusCode)
	}

	// report with malformed date
	resp = s.do("GET", "/api/v1/reports/summary?from=March+1st", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad date expected 400, got %d", resp.StatusCode)
	}
}

func TestCSRFRequiredOnWrites(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)
	if resp := s.login("demo@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	// replay the write without the CSRF header
	tok := s.csrf
	s.csrf = ""
	resp := s.do("POST", "/api/v1/sales", map[string]any{
		"productId": "prd-kb-001", "qty": 1, "buyerName": "NoToken",
	})
	s.csrf = tok
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 without csrf token, got %d", resp.StatusCode)
	}
}

func TestProductsScopedToOwner(t *testing.T) {
	app, _ := newTestApp(t)

	// admin owns no products; the demo seed belongs to the demo user
	s := newSession(t, app)
	if resp := s.login("admin@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var out struct {
		Count int `json:"count"`
	}
	resp := s.do("GET", "/api/v1/products", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &out)
	if out.Count != 0 {
		t.Fatalf("admin should own no products, got %d", out.Count)
	}

	resp = s.do("GET", "/api/v1/products/prd-kb-001", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign product expected 404, got %d", resp.StatusCode)
	}
}
