package feed

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, vm *ViewModel, authMiddleware fiber.Handler) {
	r.Get("/posts", func(c *fiber.Ctx) error {
		return c.JSON(vm.List())
	})

	r.Post("/posts", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Content    string `json:"content"`
			AuthorName string `json:"authorName"`
			Handle     string `json:"handle"`
			AvatarURL  string `json:"avatarUrl"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		author := Author{Name: body.AuthorName, Handle: body.Handle, AvatarURL: body.AvatarURL}
		post, ok := vm.CreateAs(c.Context(), author, body.Content)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "content required")
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Post("/posts/:id/like", authMiddleware, func(c *fiber.Ctx) error {
		vm.ToggleLike(c.Context(), c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/posts/:id", authMiddleware, func(c *fiber.Ctx) error {
		vm.Delete(c.Context(), c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})
}
