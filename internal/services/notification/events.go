package notification

import "paygo/internal/models"

// Event is a side effect handed off by the engines after their database
// transaction commits.
type Event interface {
	isEvent()
}

// WalletFunded fires after a funding settlement credits a wallet.
type WalletFunded struct {
	User          *models.User
	Amount        float64
	Reference     string
	TransactionID uint
}

// TransferCompleted fires after a peer transfer commits. It fans out to both
// parties and records the recipient as a beneficiary of the sender.
type TransferCompleted struct {
	Sender     *models.User
	Recipient  *models.User
	Amount     float64
	DebitTxID  uint
	CreditTxID uint
}

// SecurityAlert covers account-level events (suspension, password change).
type SecurityAlert struct {
	User    *models.User
	Title   string
	Message string
}

func (WalletFunded) isEvent()      {}
func (TransferCompleted) isEvent() {}
func (SecurityAlert) isEvent()     {}
