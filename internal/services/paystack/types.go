package paystack

// InitResult is the useful subset of Paystack's transaction initialize response.
type InitResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResult is the authoritative charge state reported by Paystack.
type VerifyResult struct {
	Status     string // "success", "failed", "abandoned", ...
	AmountKobo int64
	Reference  string
}

// Event is an inbound webhook payload. Amounts are in kobo.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Reference string  `json:"reference"`
	Amount    int64   `json:"amount"`
	Status    string  `json:"status"`
	Channel   string  `json:"channel"`
	PaidAt    string  `json:"paid_at"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// EventChargeSuccess is the only event type that settles a funding.
const EventChargeSuccess = "charge.success"

type apiResponse[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}
