package transfer

import "errors"

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAccountSuspended    = errors.New("account is suspended")
)
