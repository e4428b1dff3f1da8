package sealpay

import (
	"errors"
)

var (
	// registry
	ErrItemExist         = errors.New("item_exist")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidExpiration = errors.New("invalid_expiration")

	// settlement
	ErrItemNotExist     = errors.New("item_not_exist")
	ErrSelfPurchase     = errors.New("self_purchase")
	ErrAlreadyPurchased = errors.New("already_purchased")
	ErrItemExpired      = errors.New("item_expired")
	ErrTransferFailed   = errors.New("payment_transfer_failed")

	// configuration
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidAddress = errors.New("invalid_address")
	ErrFeeTooHigh     = errors.New("fee_too_high")
)
