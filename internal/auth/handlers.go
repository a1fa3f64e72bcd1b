package auth

import (
	"errors"

	"backend-sparnet/internal/identity"

	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}

		user, profileErr, err := svc.SignUp(c.Context(), req.Email, req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if profileErr != nil {
			return c.JSON(fiber.Map{
				"user":          user,
				"warning":       "user created but profile insert failed",
				"profile_error": profileErr.Error(),
			})
		}
		return c.JSON(fiber.Map{"user": user})
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}

		session, user, err := svc.Login(c.Context(), req.Email, req.Password)
		if err != nil {
			// Missing anon key is a deployment fault, not a bad login.
			if errors.Is(err, identity.ErrMissingAnonKey) {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"session": session, "user": user})
	})
}
