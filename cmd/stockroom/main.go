package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and avoid leaking internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for audit logs)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Security check failed. Please refresh and try again.",
			})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	api := app.Group("/api/v1")

	// Auth (login throttled)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many attempts, please try again later",
			})
		},
	}), authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/me", handlers.RequireUser(authSvc), authH.Me)

	// Everything below needs a logged-in user
	user := api.Group("", handlers.RequireUser(authSvc))

	// Products & stock
	user.Get("/products", deps.ProductHandler.List)
	user.Post("/products", deps.ProductHandler.Create)
	user.Get("/products/search", deps.ProductHandler.Search)
	user.Get("/products/:id", deps.ProductHandler.Get)
	user.Put("/products/:id", deps.ProductHandler.Update)
	user.Delete("/products/:id", deps.ProductHandler.Delete)
	user.Post("/products/:id/stock", deps.ProductHandler.AddStock)
	user.Get("/products/:id/sales", deps.SaleHandler.ListByProduct)
	user.Get("/products/:id/purchases", deps.PurchaseHandler.ListByProduct)
	user.Get("/availability", deps.ProductHandler.Availability)

	// Sellers
	user.Get("/sellers", deps.SellerHandler.List)
	user.Post("/sellers", deps.SellerHandler.Create)
	user.Get("/sellers/:id", deps.SellerHandler.Get)
	user.Put("/sellers/:id", deps.SellerHandler.Rename)
	user.Delete("/sellers/:id", deps.SellerHandler.Delete)

	// Sales & purchases
	user.Get("/sales", deps.SaleHandler.List)
	user.Post("/sales", deps.SaleHandler.Create)
	user.Get("/sales/:id", deps.SaleHandler.Get)
	user.Get("/purchases", deps.PurchaseHandler.List)

	// Reports
	user.Get("/reports/summary", deps.ReportHandler.Summary)
	user.Get("/reports/daily", deps.ReportHandler.Daily)
	user.Get("/reports/weekly", deps.ReportHandler.Weekly)
	user.Get("/reports/monthly", deps.ReportHandler.Monthly)
	user.Get("/reports/yearly", deps.ReportHandler.Yearly)
	user.Get("/reports/top-products", deps.ReportHandler.TopProducts)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Delete("/users/:id", deps.AdminHandler.DeleteUser)
	admin.Get("/sales", deps.AdminHandler.SalesOverview)
	admin.Get("/low-stock", deps.AdminHandler.LowStock)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
