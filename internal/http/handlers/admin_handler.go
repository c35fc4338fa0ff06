package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/validate"
)

type AdminHandler struct {
	Users         *repos.UserRepo
	Products      *repos.ProductRepo
	SaleRepo      *repos.SaleRepo
	LowStockLevel int
}

// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.ListNonAdmin()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load users")
	}
	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role})
	}
	return c.JSON(fiber.Map{"users": out, "count": len(out)})
}

// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing id")
	}
	if err := h.Users.DeleteUserCascade(h.Products, id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return jsonErr(c, fiber.StatusBadRequest, "could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/admin/sales
func (h *AdminHandler) SalesOverview(c *fiber.Ctx) error {
	rows, err := h.SaleRepo.ListLatestAll(100)
	if err != nil {
		applog.Error(c, "admin.sales.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load sales")
	}
	return c.JSON(fiber.Map{"sales": rows, "count": len(rows)})
}

// GET /api/v1/admin/low-stock
func (h *AdminHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.Products.ListLowStock(h.LowStockLevel)
	if err != nil {
		applog.Error(c, "admin.lowstock.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load inventory")
	}
	return c.JSON(fiber.Map{"products": rows, "count": len(rows), "threshold": h.LowStockLevel})
}
