package funding

import "errors"

var (
	ErrAmountTooLow         = errors.New("amount is below the funding minimum")
	ErrPendingFundingExists = errors.New("a pending funding already exists, complete or verify it first")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrPaymentNotSuccessful = errors.New("payment was not successful")
	ErrFundingNotFound      = errors.New("no funding found for this reference")
)
