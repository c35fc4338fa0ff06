package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

// newTestApp wires the app the way cmd/stockroom/main.go does, against an
// in-memory database with the standard seeds.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", LowStockLevel: 5}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New()
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(limiter.New(limiter.Config{Max: 1000, Expiration: time.Minute}))
	app.Use(csrf.New(csrf.Config{KeyLookup: "header:X-CSRF-Token", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg, authSvc)

	api := app.Group("/api/v1")
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/me", handlers.RequireUser(authSvc), authH.Me)

	user := api.Group("", handlers.RequireUser(authSvc))
	user.Get("/products", deps.ProductHandler.List)
	user.Post("/products", deps.ProductHandler.Create)
	user.Get("/products/search", deps.ProductHandler.Search)
	user.Get("/products/:id", deps.ProductHandler.Get)
	user.Post("/products/:id/stock", deps.ProductHandler.AddStock)
	user.Get("/availability", deps.ProductHandler.Availability)
	user.Get("/sales", deps.SaleHandler.List)
	user.Post("/sales", deps.SaleHandler.Create)
	user.Get("/reports/summary", deps.ReportHandler.Summary)
	user.Get("/reports/monthly", deps.ReportHandler.Monthly)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Get("/low-stock", deps.AdminHandler.LowStock)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	return app, db
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// session carries the cookies a browser would hold across requests.
type session struct {
	t    *testing.T
	app  *fiber.App
	csrf string
	sid  string
}

func newSession(t *testing.T, app *fiber.App) *session {
	t.Helper()
	// Safe request to pick up the CSRF cookie.
	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf cookie missing")
	}
	return &session{t: t, app: app, csrf: tok}
}

func (s *session) do(method, target string, body any) *http.Response {
	s.t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-CSRF-Token", s.csrf)
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: s.csrf})
	if s.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: s.sid})
	}
	resp, err := s.app.Test(req)
	if err != nil {
		s.t.Fatal(err)
	}
	if sid := extractCookie(resp, "sid"); sid != "" {
		s.sid = sid
	}
	return resp
}

func (s *session) login(email, password string) *http.Response {
	return s.do("POST", "/api/v1/auth/login", map[string]string{
		"email": email, "password": password,
	})
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}
