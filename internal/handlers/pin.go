package handlers

import (
	"errors"

	"paygo/internal/services/pin"
	"paygo/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PinHandler struct {
	pinService pin.Service
}

func NewPinHandler(pinService pin.Service) *PinHandler {
	return &PinHandler{pinService: pinService}
}

// PinStatus reports whether the user has a wallet PIN configured.
func (h *PinHandler) PinStatus(c *fiber.Ctx) error {
	claims := mustClaims(c)

	status, err := h.pinService.Status(claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get PIN status")
	}

	return response.Success(c, "PIN status retrieved", status)
}

// SetPin configures the initial wallet PIN, gated on the account password.
func (h *PinHandler) SetPin(c *fiber.Ctx) error {
	claims := mustClaims(c)

	var input struct {
		Pin      string `json:"pin"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.pinService.Set(claims.UserID, input.Pin, input.Password); err != nil {
		if pe := pinError(c, err); pe != nil {
			return pe
		}
		return response.ServerError(c, "Failed to set PIN")
	}

	return response.Success(c, "Wallet PIN set", nil)
}

// ChangePin replaces the wallet PIN, authorized by the current PIN or the
// account password.
func (h *PinHandler) ChangePin(c *fiber.Ctx) error {
	claims := mustClaims(c)

	var input struct {
		NewPin     string `json:"newPin"`
		CurrentPin string `json:"currentPin"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.pinService.Change(claims.UserID, input.NewPin, input.CurrentPin, input.Password); err != nil {
		if pe := pinError(c, err); pe != nil {
			return pe
		}
		return response.ServerError(c, "Failed to change PIN")
	}

	return response.Success(c, "Wallet PIN changed", nil)
}

// VerifyPin checks a candidate PIN without performing any operation. Failed
// attempts still count toward the lockout.
func (h *PinHandler) VerifyPin(c *fiber.Ctx) error {
	claims := mustClaims(c)

	var input struct {
		Pin string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.pinService.Verify(claims.UserID, input.Pin); err != nil {
		if pe := pinError(c, err); pe != nil {
			return pe
		}
		return response.ServerError(c, "Failed to verify PIN")
	}

	return response.Success(c, "PIN verified", fiber.Map{"valid": true})
}

// pinError maps pin service sentinels to HTTP responses. It returns nil for
// errors the pin service does not own.
func pinError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pin.ErrInvalidPinFormat):
		return response.BadRequest(c, "PIN must be exactly 4 digits")
	case errors.Is(err, pin.ErrPinAlreadySet):
		return response.Conflict(c, "A wallet PIN is already set, use change PIN instead")
	case errors.Is(err, pin.ErrPinNotSet):
		return response.BadRequest(c, "No wallet PIN set, set one first")
	case errors.Is(err, pin.ErrIncorrectPin):
		return response.Unauthorized(c, "Incorrect PIN")
	case errors.Is(err, pin.ErrInvalidPassword):
		return response.Unauthorized(c, "Invalid password")
	case errors.Is(err, pin.ErrPinLocked):
		return response.Error(c, fiber.StatusTooManyRequests, "PIN locked due to too many failed attempts, try again later")
	case errors.Is(err, pin.ErrNoCredential):
		return response.BadRequest(c, "Either currentPin or password is required")
	default:
		return nil
	}
}
