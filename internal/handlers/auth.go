package handlers

import (
	"errors"

	"paygo/internal/models"
	"paygo/internal/services/auth"
	"paygo/internal/utils/response"
	"paygo/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func userPayload(u *models.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"email":      u.Email,
		"isVerified": u.IsVerified,
		"role":       u.Role,
	}
}

// Register creates a new account and sends a verification OTP.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "firstName, lastName, email and password are required")
	}
	if !validation.IsEmail(input.Email) {
		return response.BadRequest(c, "Invalid email address")
	}

	user, err := h.authService.Register(c.Context(), auth.RegisterRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			return response.Conflict(c, "An account with this email already exists")
		case errors.Is(err, auth.ErrWeakPassword):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Registration failed")
		}
	}

	c.Status(fiber.StatusCreated)
	return response.Success(c, "Registration successful, check your email for the verification code", fiber.Map{
		"user": userPayload(user),
	})
}

// VerifyOTP confirms the email verification code sent at registration.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" || input.OTP == "" {
		return response.BadRequest(c, "email and otp are required")
	}

	user, err := h.authService.VerifyOTP(c.Context(), input.Email, input.OTP)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidOTP) {
			return response.BadRequest(c, "Invalid or expired OTP")
		}
		return response.ServerError(c, "Verification failed")
	}

	return response.Success(c, "Account verified", fiber.Map{"user": userPayload(user)})
}

// Login authenticates a user and returns access and refresh tokens.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "email and password are required")
	}

	user, accessToken, refreshToken, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, auth.ErrNotVerified):
			return response.Error(c, fiber.StatusForbidden, "Account not verified, check your email for the code")
		case errors.Is(err, auth.ErrSuspended):
			return response.Error(c, fiber.StatusForbidden, "Account suspended")
		default:
			return response.ServerError(c, "Authentication failed")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          userPayload(user),
	})
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return response.BadRequest(c, "refresh_token is required")
	}

	accessToken, refreshToken, err := h.authService.RefreshTokens(input.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid refresh token")
	}

	return response.Success(c, "Token refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// ForgotPassword sends a reset OTP. It responds identically whether or not
// the email is registered.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return response.BadRequest(c, "email is required")
	}

	if err := h.authService.ForgotPassword(c.Context(), input.Email); err != nil {
		return response.ServerError(c, "Could not process the request")
	}

	return response.Success(c, "If that email is registered, a reset code has been sent", nil)
}

// ResetPassword sets a new password using a reset OTP.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" || input.OTP == "" || input.NewPassword == "" {
		return response.BadRequest(c, "email, otp and newPassword are required")
	}

	if err := h.authService.ResetPassword(c.Context(), input.Email, input.OTP, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidOTP):
			return response.BadRequest(c, "Invalid or expired OTP")
		case errors.Is(err, auth.ErrWeakPassword):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Password reset failed")
		}
	}

	return response.Success(c, "Password reset successful", nil)
}

// ChangePassword updates the password for the authenticated user.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims := mustClaims(c)

	var input struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.OldPassword == "" || input.NewPassword == "" {
		return response.BadRequest(c, "oldPassword and newPassword are required")
	}

	if err := h.authService.ChangePassword(claims.UserID, input.OldPassword, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return response.Unauthorized(c, "Current password is incorrect")
		case errors.Is(err, auth.ErrWeakPassword):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Password change failed")
		}
	}

	return response.Success(c, "Password changed", nil)
}
