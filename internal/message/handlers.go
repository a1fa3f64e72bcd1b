package message

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/conversations", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserA string `json:"user_a"`
			UserB string `json:"user_b"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		conv, err := svc.StartConversation(c.Context(), body.UserA, body.UserB)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(conv)
	})

	r.Get("/conversations", authMiddleware, func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		conversations, err := svc.Conversations(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(conversations)
	})

	r.Post("/conversations/:id/messages", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			SenderID string `json:"sender_id"`
			Body     string `json:"body"`
		}
		if err := c.BodyParser(&body); err != nil || body.SenderID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sender_id required")
		}
		msg, err := svc.SendMessage(c.Context(), c.Params("id"), body.SenderID, body.Body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	})

	r.Get("/conversations/:id/messages", authMiddleware, func(c *fiber.Ctx) error {
		messages, err := svc.Messages(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(messages)
	})
}
