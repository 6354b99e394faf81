package handlers

import (
	"errors"
	"time"

	"paygo/internal/models"
	"paygo/internal/repositories"
	"paygo/internal/services/wallet"
	"paygo/internal/utils/pagination"
	"paygo/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	walletService wallet.Service
}

func NewTransactionHandler(walletService wallet.Service) *TransactionHandler {
	return &TransactionHandler{walletService: walletService}
}

// ListTransactions returns the user's paginated transaction history.
// Supported query params: page, limit, type, startDate, endDate, sort.
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	claims := mustClaims(c)
	p := pagination.ParseFromRequest(c)

	filter := repositories.TransactionFilter{
		Limit:   p.Limit,
		Offset:  p.Offset,
		SortAsc: c.Query("sort") == "asc",
	}

	switch txType := c.Query("type"); txType {
	case "", models.TransactionTypeCredit, models.TransactionTypeDebit:
		filter.Type = txType
	default:
		return response.BadRequest(c, "type must be credit or debit")
	}

	if raw := c.Query("startDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "startDate must be YYYY-MM-DD")
		}
		filter.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "endDate must be YYYY-MM-DD")
		}
		// Make the end date inclusive of the whole day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	transactions, total, err := h.walletService.ListTransactions(claims.UserID, filter)
	if err != nil {
		return response.ServerError(c, "Failed to list transactions")
	}

	p.Total = total
	return response.Success(c, "Transactions retrieved", fiber.Map{
		"page":         p.Page,
		"limit":        p.Limit,
		"total":        total,
		"totalPages":   p.TotalPages(),
		"transactions": transactions,
	})
}

// GetTransaction returns a single transaction owned by the user.
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	claims := mustClaims(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid transaction id")
	}

	tx, err := h.walletService.GetTransaction(id, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.ServerError(c, "Failed to get transaction")
	}

	return response.Success(c, "Transaction retrieved", tx)
}
