package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountError is returned when a transfer asks for more than the sender
// has available.
type AmountError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Error implements the error interface.
func (ae *AmountError) Error() string {
	return fmt.Sprintf("amount %s greater than balance %s", ae.Requested, ae.Available)
}

// SignatureError is returned when a transaction fails cryptographic
// verification.
type SignatureError struct {
	ID  string
	Err error
}

// Error implements the error interface.
func (se *SignatureError) Error() string {
	return fmt.Sprintf("transaction %s: signature does not match: %s", se.ID, se.Err)
}

// Unwrap returns the underlying verification error.
func (se *SignatureError) Unwrap() error {
	return se.Err
}
