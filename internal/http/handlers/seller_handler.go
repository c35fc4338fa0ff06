package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type SellerHandler struct {
	Sellers *services.SellerService
}

type sellerBody struct {
	Name string `json:"name"`
}

// POST /api/v1/sellers
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)

	var body sellerBody
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return jsonErr(c, fiber.StatusBadRequest, "name must be 1-60 characters")
	}

	sel, err := h.Sellers.Create(u.ID, name)
	if err != nil {
		// unique index on (user_id, name) surfaces here
		applog.Error(c, "seller.create.fail", err, nil)
		return jsonErr(c, fiber.StatusConflict, "seller already exists")
	}
	applog.Audit(c, "seller.create", map[string]any{"seller_id": sel.ID})
	return c.Status(fiber.StatusCreated).JSON(sel)
}

// GET /api/v1/sellers
func (h *SellerHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	sellers, err := h.Sellers.List(u.ID)
	if err != nil {
		applog.Error(c, "seller.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load sellers")
	}
	return c.JSON(fiber.Map{"sellers": sellers, "count": len(sellers)})
}

// GET /api/v1/sellers/:id
func (h *SellerHandler) Get(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "seller not found")
	}
	sel, err := h.Sellers.Get(u.ID, id)
	if err != nil {
		return notFound(c, "seller not found")
	}
	return c.JSON(sel)
}

// PUT /api/v1/sellers/:id
func (h *SellerHandler) Rename(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "seller not found")
	}
	var body sellerBody
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "name must be 1-60 characters")
	}
	if err := h.Sellers.Rename(u.ID, id, name); err != nil {
		applog.Error(c, "seller.rename.fail", err, map[string]any{"seller_id": id})
		return jsonErr(c, fiber.StatusBadRequest, "could not rename seller")
	}
	applog.Audit(c, "seller.rename", map[string]any{"seller_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// DELETE /api/v1/sellers/:id
func (h *SellerHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "seller not found")
	}
	if err := h.Sellers.Delete(u.ID, id); err != nil {
		// FK RESTRICT surfaces here while products reference the seller
		applog.Error(c, "seller.delete.fail", err, map[string]any{"seller_id": id})
		return jsonErr(c, fiber.StatusConflict, "seller still has products")
	}
	applog.Audit(c, "seller.delete", map[string]any{"seller_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
