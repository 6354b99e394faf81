package handlers

import (
	"errors"

	"paygo/internal/repositories"
	"paygo/internal/services/beneficiary"
	"paygo/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const beneficiaryListCap = 20

type BeneficiaryHandler struct {
	beneficiaryService beneficiary.Service
}

func NewBeneficiaryHandler(beneficiaryService beneficiary.Service) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaryService: beneficiaryService}
}

// ListBeneficiaries returns the user's saved recipients, most recently used
// first.
func (h *BeneficiaryHandler) ListBeneficiaries(c *fiber.Ctx) error {
	claims := mustClaims(c)

	beneficiaries, err := h.beneficiaryService.List(claims.UserID, beneficiaryListCap)
	if err != nil {
		return response.ServerError(c, "Failed to list beneficiaries")
	}

	return response.Success(c, "Beneficiaries retrieved", fiber.Map{
		"beneficiaries": beneficiaries,
	})
}

// UpdateBeneficiary sets or clears a beneficiary's nickname.
func (h *BeneficiaryHandler) UpdateBeneficiary(c *fiber.Ctx) error {
	claims := mustClaims(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid beneficiary id")
	}

	var input struct {
		Nickname string `json:"nickname"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.beneficiaryService.Rename(id, claims.UserID, input.Nickname)
	if err != nil {
		if errors.Is(err, repositories.ErrBeneficiaryNotFound) {
			return response.NotFound(c, "Beneficiary not found")
		}
		return response.ServerError(c, "Failed to update beneficiary")
	}

	return response.Success(c, "Beneficiary updated", fiber.Map{
		"beneficiary": updated,
	})
}

// DeleteBeneficiary removes a saved recipient.
func (h *BeneficiaryHandler) DeleteBeneficiary(c *fiber.Ctx) error {
	claims := mustClaims(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid beneficiary id")
	}

	if err := h.beneficiaryService.Remove(id, claims.UserID); err != nil {
		if errors.Is(err, repositories.ErrBeneficiaryNotFound) {
			return response.NotFound(c, "Beneficiary not found")
		}
		return response.ServerError(c, "Failed to delete beneficiary")
	}

	return response.Success(c, "Beneficiary deleted", nil)
}
