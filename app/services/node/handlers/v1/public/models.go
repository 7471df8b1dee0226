package public

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/business/sys/validate"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/signature"
)

// mineData is the payload for sealing arbitrary data into a block.
type mineData struct {
	Data string `json:"data" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (m mineData) Validate() error {
	return validate.Check(m)
}

// newTx is the payload for paying value from the node wallet.
type newTx struct {
	Receiver ledger.Address  `json:"receiver" validate:"required,address"`
	Amount   decimal.Decimal `json:"amount"`
}

// Validate checks the data in the model is considered clean.
func (n newTx) Validate() error {
	if err := validate.Check(n); err != nil {
		return err
	}

	if !n.Amount.IsPositive() {
		return validate.FieldErrors{
			{Field: "amount", Err: fmt.Sprintf("amount must be positive, got %s", n.Amount)},
		}
	}

	return nil
}

// chainInfo is returned when the chain is validated.
type chainInfo struct {
	Valid  bool           `json:"valid"`
	Height uint64         `json:"height"`
	Hash   signature.Hash `json:"hash"`
	Error  string         `json:"error,omitempty"`
}

// balanceInfo is the derived balance of an address.
type balanceInfo struct {
	Address ledger.Address  `json:"address"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}
