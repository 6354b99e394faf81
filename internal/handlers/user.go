package handlers

import (
	"errors"

	"paygo/internal/repositories"
	"paygo/internal/services/user"
	"paygo/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims := mustClaims(c)

	u, err := h.userService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.ServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved", fiber.Map{"user": userPayload(u)})
}

// UpdateProfile updates the user's name fields.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims := mustClaims(c)

	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.FirstName == "" && input.LastName == "" {
		return response.BadRequest(c, "Nothing to update")
	}

	u, err := h.userService.UpdateProfile(claims.UserID, user.UpdateProfileRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		return response.ServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated", fiber.Map{"user": userPayload(u)})
}
