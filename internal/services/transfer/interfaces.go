package transfer

import (
	"context"

	"paygo/internal/services/notification"
)

// PinVerifier authorizes the sender before money moves.
type PinVerifier interface {
	Verify(userID uint, candidate string) error
}

// Notifier hands off post-commit side effects.
type Notifier interface {
	Dispatch(e notification.Event)
}

// WalletCache invalidates cached wallet reads after a balance change.
type WalletCache interface {
	InvalidateWallet(ctx context.Context, userID uint) error
}

// Result carries the sender's balance after a successful transfer.
type Result struct {
	NewBalance float64 `json:"new_balance"`
}

// Service moves balance between two wallets inside the system.
type Service interface {
	Transfer(ctx context.Context, senderID uint, recipientEmail string, amount float64, pin string) (*Result, error)
}
