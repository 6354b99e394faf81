package handlers

import (
	"errors"

	"paygo/internal/services/funding"
	"paygo/internal/services/transfer"
	"paygo/internal/services/wallet"
	"paygo/internal/utils/response"
	"paygo/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type WalletHandler struct {
	walletService   wallet.Service
	fundingService  funding.Service
	transferService transfer.Service
}

func NewWalletHandler(walletService wallet.Service, fundingService funding.Service, transferService transfer.Service) *WalletHandler {
	return &WalletHandler{
		walletService:   walletService,
		fundingService:  fundingService,
		transferService: transferService,
	}
}

// GetWallet returns the authenticated user's balance.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims := mustClaims(c)

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "Failed to get wallet")
	}

	return response.Success(c, "Wallet retrieved", fiber.Map{
		"balance":  w.Balance,
		"currency": w.Currency,
	})
}

// FundWallet initializes a gateway payment and returns the checkout URL.
func (h *WalletHandler) FundWallet(c *fiber.Ctx) error {
	claims := mustClaims(c)

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.fundingService.InitFunding(c.Context(), claims.UserID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, funding.ErrAmountTooLow):
			return response.BadRequest(c, "Minimum funding amount is ₦100")
		case errors.Is(err, funding.ErrPendingFundingExists):
			return response.Conflict(c, "You have a pending funding, verify or complete it first")
		default:
			logrus.WithError(err).Error("funding init failed")
			return response.ServerError(c, "Could not initialize payment")
		}
	}

	return response.Success(c, "Payment initialized", fiber.Map{
		"authorization_url": result.AuthorizationURL,
		"reference":         result.Reference,
		"amount":            result.Amount,
	})
}

// PaystackWebhook receives charge events from the gateway. It is a public
// route; the HMAC signature over the raw body is the only authentication.
func (h *WalletHandler) PaystackWebhook(c *fiber.Ctx) error {
	signature := c.Get("X-Paystack-Signature")
	rawBody := c.Body()

	result, err := h.fundingService.HandleWebhook(c.Context(), rawBody, signature)
	if err != nil {
		if errors.Is(err, funding.ErrInvalidSignature) {
			return response.Unauthorized(c, "Invalid signature")
		}
		// The gateway retries on non-2xx, so only genuine processing
		// failures should bubble up as errors here.
		logrus.WithError(err).Error("webhook settlement failed")
		return response.ServerError(c, "Webhook processing failed")
	}

	if result == nil {
		return response.Success(c, "Event ignored", nil)
	}
	return response.Success(c, "Webhook processed", result)
}

// VerifyFunding settles a funding by reference via the gateway's verify API.
// It is the fallback path when the webhook was missed.
func (h *WalletHandler) VerifyFunding(c *fiber.Ctx) error {
	claims := mustClaims(c)

	reference := c.Params("reference")
	if reference == "" {
		return response.BadRequest(c, "reference is required")
	}

	result, err := h.fundingService.VerifyFunding(c.Context(), claims.UserID, reference)
	if err != nil {
		switch {
		case errors.Is(err, funding.ErrFundingNotFound):
			return response.NotFound(c, "No funding found for this reference")
		case errors.Is(err, funding.ErrPaymentNotSuccessful):
			return response.BadRequest(c, "Payment was not successful")
		default:
			logrus.WithError(err).Error("funding verification failed")
			return response.ServerError(c, "Verification failed")
		}
	}

	msg := "Wallet funded"
	if !result.Credited {
		msg = "Funding already processed"
	}
	return response.Success(c, msg, result)
}

// Transfer moves money to another user's wallet, authorized by PIN.
func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	claims := mustClaims(c)

	var input struct {
		RecipientEmail string  `json:"recipientEmail"`
		Amount         float64 `json:"amount"`
		Pin            string  `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !validation.IsEmail(input.RecipientEmail) {
		return response.BadRequest(c, "A valid recipientEmail is required")
	}
	if input.Pin == "" {
		return response.BadRequest(c, "pin is required")
	}

	result, err := h.transferService.Transfer(c.Context(), claims.UserID, input.RecipientEmail, input.Amount, input.Pin)
	if err != nil {
		return transferError(c, err)
	}

	return response.Success(c, "Transfer successful", fiber.Map{
		"newBalance": result.NewBalance,
	})
}

func transferError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transfer.ErrInvalidAmount):
		return response.BadRequest(c, "Amount must be greater than zero")
	case errors.Is(err, transfer.ErrRecipientNotFound):
		return response.NotFound(c, "Recipient not found")
	case errors.Is(err, transfer.ErrSelfTransfer):
		return response.BadRequest(c, "You cannot transfer to yourself")
	case errors.Is(err, transfer.ErrInsufficientBalance):
		return response.BadRequest(c, "Insufficient balance")
	case errors.Is(err, transfer.ErrAccountSuspended):
		return response.Error(c, fiber.StatusForbidden, "Account suspended")
	default:
		if pe := pinError(c, err); pe != nil {
			return pe
		}
		logrus.WithError(err).Error("transfer failed")
		return response.ServerError(c, "Transfer failed")
	}
}
