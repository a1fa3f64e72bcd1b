package event

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Event
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" || req.CreatedBy == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title and created_by required")
		}
		event, err := svc.CreateEvent(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(event)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		events, err := svc.Upcoming(c.Context(), c.Query("discipline"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(events)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		event, err := svc.GetEvent(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "event not found")
		}
		return c.JSON(event)
	})

	r.Post("/:id/attendees", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		attendee, err := svc.Join(c.Context(), c.Params("id"), body.UserID, body.Status)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(attendee)
	})

	r.Get("/:id/attendees", func(c *fiber.Ctx) error {
		attendees, err := svc.Attendees(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(attendees)
	})
}
