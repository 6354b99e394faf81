package funding

import (
	"context"

	"paygo/internal/services/notification"
	"paygo/internal/services/paystack"
)

// Gateway is the outbound payment processor surface the engine depends on.
type Gateway interface {
	Initialize(ctx context.Context, email string, amountKobo int64) (*paystack.InitResult, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error)
	ValidateSignature(rawBody []byte, signature string) bool
}

// Notifier hands off post-commit side effects.
type Notifier interface {
	Dispatch(e notification.Event)
}

// WalletCache invalidates cached wallet reads after a balance change.
type WalletCache interface {
	InvalidateWallet(ctx context.Context, userID uint) error
}

// Service orchestrates wallet funding through the gateway.
type Service interface {
	// InitFunding starts a new funding intent and returns the gateway
	// redirect URL. Nothing is persisted unless the gateway call succeeds.
	InitFunding(ctx context.Context, userID uint, amount float64) (*InitFundingResult, error)
	// HandleWebhook settles a funding pushed by the gateway. A nil result
	// with nil error means the event was acknowledged but not relevant.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*SettleResult, error)
	// VerifyFunding settles a funding by asking the gateway for the
	// authoritative charge state.
	VerifyFunding(ctx context.Context, userID uint, reference string) (*SettleResult, error)
}
