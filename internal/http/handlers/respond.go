package handlers

import "github.com/gofiber/fiber/v2"

func jsonErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return jsonErr(c, fiber.StatusNotFound, msg)
}
