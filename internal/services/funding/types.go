package funding

// MinFundingAmount is the smallest accepted funding in naira.
const MinFundingAmount = 100.0

// KoboPerNaira converts between the gateway's minor units and wallet balances.
const KoboPerNaira = 100

// InitFundingResult is returned from a successful funding initialization.
type InitFundingResult struct {
	AuthorizationURL string  `json:"authorization_url"`
	Reference        string  `json:"reference"`
	Amount           float64 `json:"amount"`
}

// SettleResult reports the outcome of a settlement attempt. Credited is
// false when the reference had already been processed; replays are benign
// and must stay that way.
type SettleResult struct {
	Reference  string  `json:"reference"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance,omitempty"`
	Credited   bool    `json:"credited"`
}
