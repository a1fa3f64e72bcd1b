package profile

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, store Store) {
	r.Post("/upsert", func(c *fiber.Ctx) error {
		var req UpsertRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		params, err := req.Sanitize()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p, err := store.Upsert(c.Context(), params)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"ok": true, "profile": p})
	})
}
