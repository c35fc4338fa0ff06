package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/repos"
	"stockroom/internal/validate"
)

// PurchaseHandler reads the stock-intake audit trail. Purchases are never
// written directly; they are created by the product create/add-stock
// transactions.
type PurchaseHandler struct {
	Purchases *repos.PurchaseRepo
}

// GET /api/v1/purchases
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	purchases, err := h.Purchases.List(u.ID, 20, (page-1)*20)
	if err != nil {
		applog.Error(c, "purchase.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load purchases")
	}
	return c.JSON(fiber.Map{"purchases": purchases, "count": len(purchases), "page": page})
}

// GET /api/v1/products/:id/purchases
func (h *PurchaseHandler) ListByProduct(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	purchases, err := h.Purchases.ListByProduct(u.ID, productID)
	if err != nil {
		applog.Error(c, "purchase.list.product.fail", err, map[string]any{"product_id": productID})
		return jsonErr(c, fiber.StatusInternalServerError, "could not load purchases")
	}
	return c.JSON(fiber.Map{"purchases": purchases, "count": len(purchases)})
}
