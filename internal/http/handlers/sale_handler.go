package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type SaleHandler struct {
	Sales *services.SaleService
}

type saleBody struct {
	ProductID    string  `json:"productId"`
	Qty          int     `json:"qty"`
	TotalPrice   float64 `json:"totalPrice"` // client-side total, audit only
	BuyerName    string  `json:"buyerName"`
	BuyerContact string  `json:"buyerContact"`
}

// POST /api/v1/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)

	var body saleBody
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid body")
	}
	productID, ok := validate.ID(body.ProductID)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid productId")
	}
	if body.Qty < 1 || body.Qty > 10000 {
		return jsonErr(c, fiber.StatusBadRequest, "qty must be between 1 and 10000")
	}
	buyerName, ok := validate.Name(body.BuyerName)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "buyerName"})
		return jsonErr(c, fiber.StatusBadRequest, "buyerName must be 1-60 characters")
	}

	sale, err := h.Sales.Create(u.ID, productID, body.Qty, services.Buyer{
		Name:    buyerName,
		Contact: strings.TrimSpace(body.BuyerContact),
	})
	if err != nil {
		if err == services.ErrNoSuchProduct {
			return notFound(c, "product not found")
		}
		// business rule errors (e.g., insufficient stock) surface as 400
		applog.Security(c, "sale.create.fail", map[string]any{"product_id": productID, "error": err.Error()})
		return jsonErr(c, fiber.StatusBadRequest, "could not record sale. Please review quantities and try again.")
	}
	applog.Audit(c, "sale.create", map[string]any{
		"sale_id":      sale.ID,
		"product_id":   productID,
		"server_total": sale.TotalPrice,
		"client_total": body.TotalPrice,
		"mismatch":     body.TotalPrice != 0 && body.TotalPrice != sale.TotalPrice,
	})
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "sale not found")
	}
	sale, err := h.Sales.Get(u.ID, id)
	if err != nil {
		return notFound(c, "sale not found")
	}
	return c.JSON(sale)
}

// GET /api/v1/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	page, _ := strconv.Atoi(c.Query("page", "1"))

	sales, err := h.Sales.List(u.ID, page, 20)
	if err != nil {
		applog.Error(c, "sale.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load sales")
	}
	return c.JSON(fiber.Map{"sales": sales, "count": len(sales), "page": page})
}

// GET /api/v1/products/:id/sales
func (h *SaleHandler) ListByProduct(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	sales, err := h.Sales.ListByProduct(u.ID, productID)
	if err != nil {
		applog.Error(c, "sale.list.product.fail", err, map[string]any{"product_id": productID})
		return jsonErr(c, fiber.StatusInternalServerError, "could not load sales")
	}
	return c.JSON(fiber.Map{"sales": sales, "count": len(sales)})
}
