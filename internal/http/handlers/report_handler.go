package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type ReportHandler struct {
	Reports *services.ReportService
}

// GET /api/v1/reports/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	u := currentUser(c)

	from := c.Query("from")
	if from != "" {
		if _, ok := validate.Date(from); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "from must be YYYY-MM-DD")
		}
	}
	to := c.Query("to")
	if to != "" {
		if _, ok := validate.Date(to); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
	}

	sum, err := h.Reports.Summary(u.ID, from, to)
	if err != nil {
		applog.Error(c, "report.summary.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not build report")
	}
	return c.JSON(sum)
}

// GET /api/v1/reports/daily?days=7
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	u := currentUser(c)
	days, _ := strconv.Atoi(c.Query("days", "7"))

	buckets, err := h.Reports.Daily(u.ID, days)
	if err != nil {
		applog.Error(c, "report.daily.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not build report")
	}
	return c.JSON(fiber.Map{"buckets": buckets})
}

// GET /api/v1/reports/weekly?weeks=8
func (h *ReportHandler) Weekly(c *fiber.Ctx) error {
	u := currentUser(c)
	weeks, _ := strconv.Atoi(c.Query("weeks", "8"))

	buckets, err := h.Reports.Weekly(u.ID, weeks)
	if err != nil {
		applog.Error(c, "report.weekly.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not build report")
	}
	return c.JSON(fiber.Map{"buckets": buckets})
}

// GET /api/v1/reports/monthly?year=2026
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	u := currentUser(c)

	year := 0
	if raw := c.Query("year"); raw != "" {
		y, ok := validate.Year(raw)
		if !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid year")
		}
		year = y
	}

	buckets, err := h.Reports.Monthly(u.ID, year)
	if err != nil {
		applog.Error(c, "report.monthly.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not build report")
	}
	return c.JSON(fiber.Map{"buckets": buckets})
}

// GET /api/v1/reports/yearly
func (h *ReportHandler) Yearly(c *fiber.Ctx) error {
	u := currentUser(c)

	buckets, err := h.Reports.Yearly(u.ID)
	if err != nil {
		applog.Error(c, "report.yearly.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not build report")
	}
	return c.JSON(fiber.Map{"buckets": buckets})
}

// GET /api/v1/reports/top-products?limit=5
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	u := currentUser(c)
	limit, _ := strconv.Atoi(c.Query("limit", "5"))

	rows, err := h.Reports.TopProducts(u.ID, limit)
	if err != nil {
		applog.Error(c, "report.top.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not build report")
	}
	return c.JSON(fiber.Map{"products": rows})
}
