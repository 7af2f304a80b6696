package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
	"crm-pulse/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return middleware.Conflict("Email already registered")
		case errors.Is(err, auth.ErrNameRequired),
			errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrPasswordTooShort):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid email or password")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Logout revokes the presented token if there is one and always answers 204.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if token != "" {
		if err := h.authService.Logout(c.Context(), token); err != nil {
			return err
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Context(), identity)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return middleware.Unauthorized("Unauthorized")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.authService.UpdateProfile(c.Context(), identity, input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNameRequired):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, auth.ErrUserNotFound):
			return middleware.Unauthorized("Unauthorized")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.ChangePassword(c.Context(), identity, input); err != nil {
		switch {
		case errors.Is(err, auth.ErrCurrentPasswordRequired),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordUnchanged):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, auth.ErrWrongPassword):
			return middleware.Unauthorized("Current password is incorrect")
		case errors.Is(err, auth.ErrUserNotFound):
			return middleware.Unauthorized("Unauthorized")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password updated",
	})
}
