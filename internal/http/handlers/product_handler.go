package handlers

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/domain"
	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

type productBody struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	SellerID string  `json:"sellerId"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	UnitCost float64 `json:"unitCost"`
	Active   *bool   `json:"active"`
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)

	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return jsonErr(c, fiber.StatusBadRequest, "name must be 1-60 characters")
	}
	category, ok := validate.Token(body.Category)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid category")
	}
	if body.SellerID != "" {
		if _, ok := validate.ID(body.SellerID); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "sellerId"})
			return jsonErr(c, fiber.StatusBadRequest, "invalid sellerId")
		}
	}
	if body.Price < 0 || body.Stock < 0 || body.UnitCost < 0 {
		return jsonErr(c, fiber.StatusBadRequest, "price, stock and unitCost must be non-negative")
	}

	p, err := h.Products.Create(u.ID, services.NewProduct{
		Name:     name,
		Category: category,
		Brand:    strings.TrimSpace(body.Brand),
		SellerID: body.SellerID,
		Price:    body.Price,
		Stock:    body.Stock,
		UnitCost: body.UnitCost,
	})
	if err != nil {
		if err == services.ErrNoSuchSeller {
			return jsonErr(c, fiber.StatusBadRequest, "seller not found")
		}
		applog.Error(c, "product.create.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, "could not create product")
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "stock": p.Stock})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	p, err := h.Products.Get(u.ID, id)
	if err != nil {
		return notFound(c, "product not found")
	}
	return c.JSON(p)
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)

	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.Token(category); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return jsonErr(c, fiber.StatusBadRequest, "invalid category")
		}
	}
	sellerID := strings.TrimSpace(c.Query("seller"))
	if sellerID != "" {
		if _, ok := validate.ID(sellerID); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "seller"})
			return jsonErr(c, fiber.StatusBadRequest, "invalid seller")
		}
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))

	products, err := h.Products.List(u.ID, strings.ToLower(category), sellerID, page, 20)
	if err != nil {
		applog.Error(c, "product.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products), "page": page})
}

// GET /api/v1/products/search
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	u := currentUser(c)

	q, ok := validate.Q(c.Query("q"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": c.Query("q")})
		return jsonErr(c, fiber.StatusBadRequest, "enter a valid keyword (letters/numbers only)")
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))

	products, err := h.Products.Search(u.ID, q, page, 20)
	if err != nil {
		applog.Error(c, "product.search.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load results")
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}

	existing, err := h.Products.Get(u.ID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return notFound(c, "product not found")
		}
		applog.Error(c, "product.update.load", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load product")
	}

	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "name must be 1-60 characters")
	}
	category, ok := validate.Token(body.Category)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid category")
	}
	active := existing.Active
	if body.Active != nil {
		active = *body.Active
	}

	upd := domain.Product{
		Name:     name,
		Category: category,
		Brand:    strings.TrimSpace(body.Brand),
		SellerID: body.SellerID,
		Price:    body.Price,
		Active:   active,
	}
	if err := h.Products.Update(u.ID, id, upd); err != nil {
		applog.Error(c, "product.update.fail", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusBadRequest, "could not update product")
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})

	p, err := h.Products.Get(u.ID, id)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load product")
	}
	return c.JSON(p)
}

// POST /api/v1/products/:id/stock
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}

	var body struct {
		Qty      int     `json:"qty"`
		UnitCost float64 `json:"unitCost"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid body")
	}
	if body.Qty < 1 || body.Qty > 10000 {
		return jsonErr(c, fiber.StatusBadRequest, "qty must be between 1 and 10000")
	}
	if body.UnitCost < 0 {
		return jsonErr(c, fiber.StatusBadRequest, "unitCost must be non-negative")
	}

	pu, err := h.Products.AddStock(u.ID, id, body.Qty, body.UnitCost)
	if err != nil {
		applog.Error(c, "product.stock.add.fail", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusBadRequest, "could not add stock")
	}
	applog.Audit(c, "product.stock.add", map[string]any{"product_id": id, "qty": body.Qty})
	return c.Status(fiber.StatusCreated).JSON(pu)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	if err := h.Products.Delete(u.ID, id); err != nil {
		// FK RESTRICT surfaces here while sales/purchases reference the row
		applog.Error(c, "product.delete.fail", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusConflict, "product has recorded sales or purchases")
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/availability?productId=...
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}
	avail, err := h.Products.CheckAvailability(u.ID, productID)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(avail)
}
