// Package ledger implements the value transfer transactions recorded in
// block data.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/foundation/blockchain/signature"
)

// MiningReward is the amount paid to the miner of every block.
var MiningReward = decimal.NewFromInt(50)

// Signer represents the behavior required from a wallet to author
// transactions.
type Signer interface {
	Address() Address
	Balance() decimal.Decimal
	Sign(h signature.Hash) (string, error)
}

// =============================================================================

// Output represents an amount credited to an address.
type Output struct {
	Address Address         `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// Input represents the sender's authorization of a transaction. The amount
// is the sender's balance before the transaction.
type Input struct {
	TimeStamp uint64          `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
	Address   Address         `json:"address"`
	Signature string          `json:"signature"`
}

// newInput signs the outputs on behalf of the sender.
func newInput(sender Signer, outputs []Output) (Input, error) {
	h, err := HashOutputs(outputs)
	if err != nil {
		return Input{}, err
	}

	sig, err := sender.Sign(h)
	if err != nil {
		return Input{}, err
	}

	input := Input{
		TimeStamp: uint64(time.Now().UTC().Unix()),
		Amount:    sender.Balance(),
		Address:   sender.Address(),
		Signature: sig,
	}

	return input, nil
}

// =============================================================================

// Transaction is the transfer of value from a sender to a set of outputs.
// A reward transaction carries no input.
type Transaction struct {
	ID      string   `json:"id"`
	Outputs []Output `json:"outputs"`
	Input   *Input   `json:"input,omitempty"`
}

// NewTransaction constructs a signed transaction paying the amount to the
// receiver and the remaining balance back to the sender.
func NewTransaction(sender Signer, receiver Address, amount decimal.Decimal) (Transaction, error) {
	balance := sender.Balance()
	if !amount.IsPositive() || amount.GreaterThan(balance) {
		return Transaction{}, &AmountError{Requested: amount, Available: balance}
	}

	outputs := []Output{
		{Address: sender.Address(), Amount: balance.Sub(amount)},
		{Address: receiver, Amount: amount},
	}

	tx := Transaction{
		ID:      uuid.NewString(),
		Outputs: outputs,
	}

	input, err := newInput(sender, outputs)
	if err != nil {
		return Transaction{}, &SignatureError{ID: tx.ID, Err: err}
	}
	tx.Input = &input

	if err := tx.Verify(); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// Reward constructs the transaction that pays the mining reward.
func Reward(miner Address) Transaction {
	return Transaction{
		ID: uuid.NewString(),
		Outputs: []Output{
			{Address: miner, Amount: MiningReward},
		},
	}
}

// Update adds another payment from the same sender to the transaction and
// signs it again. The input amount is kept since the outputs still sum to it.
// On any failure the transaction is left as it was.
func (tx *Transaction) Update(sender Signer, receiver Address, amount decimal.Decimal) error {
	if tx.Input == nil {
		return &SignatureError{ID: tx.ID, Err: errors.New("transaction has no input")}
	}

	snapshot := tx.Clone()

	idx := -1
	for i, out := range tx.Outputs {
		if out.Address == sender.Address() {
			idx = i
			break
		}
	}

	if idx == -1 {
		return &AmountError{Requested: amount, Available: decimal.Zero}
	}

	remaining := tx.Outputs[idx].Amount
	if !amount.IsPositive() || amount.GreaterThan(remaining) {
		return &AmountError{Requested: amount, Available: remaining}
	}

	tx.Outputs[idx].Amount = remaining.Sub(amount)
	tx.Outputs = append(tx.Outputs, Output{Address: receiver, Amount: amount})

	input, err := newInput(sender, tx.Outputs)
	if err != nil {
		*tx = snapshot
		return &SignatureError{ID: tx.ID, Err: err}
	}
	input.Amount = snapshot.Input.Amount
	tx.Input = &input

	if err := tx.Verify(); err != nil {
		*tx = snapshot
		return err
	}

	return nil
}

// Verify checks the input signature against the hash of the outputs.
func (tx Transaction) Verify() error {
	if tx.Input == nil {
		return &SignatureError{ID: tx.ID, Err: errors.New("transaction has no input")}
	}

	publicKey, err := tx.Input.Address.PublicKey()
	if err != nil {
		return &SignatureError{ID: tx.ID, Err: fmt.Errorf("decoding address: %w", err)}
	}

	h, err := HashOutputs(tx.Outputs)
	if err != nil {
		return &SignatureError{ID: tx.ID, Err: err}
	}

	if err := signature.Verify(h, tx.Input.Signature, publicKey); err != nil {
		return &SignatureError{ID: tx.ID, Err: err}
	}

	return nil
}

// Conserves checks the outputs add up to the input amount.
func (tx Transaction) Conserves() bool {
	if tx.Input == nil {
		return false
	}

	return tx.Total().Equal(tx.Input.Amount)
}

// Total returns the sum of all the outputs.
func (tx Transaction) Total() decimal.Decimal {
	total := decimal.Zero
	for _, out := range tx.Outputs {
		total = total.Add(out.Amount)
	}

	return total
}

// Sender returns the address that signed the transaction.
func (tx Transaction) Sender() (Address, bool) {
	if tx.Input == nil {
		return "", false
	}

	return tx.Input.Address, true
}

// Clone returns a deep copy of the transaction.
func (tx Transaction) Clone() Transaction {
	cpy := Transaction{
		ID:      tx.ID,
		Outputs: make([]Output, len(tx.Outputs)),
	}
	copy(cpy.Outputs, tx.Outputs)

	if tx.Input != nil {
		input := *tx.Input
		cpy.Input = &input
	}

	return cpy
}

// String implements the fmt.Stringer interface for logging.
func (tx Transaction) String() string {
	from, ok := tx.Sender()
	if !ok {
		from = "reward"
	}

	return fmt.Sprintf("%s:%s", from, tx.ID)
}

// =============================================================================

// HashOutputs returns the hash of the outputs that gets signed.
func HashOutputs(outputs []Output) (signature.Hash, error) {
	data, err := json.Marshal(outputs)
	if err != nil {
		return "", err
	}

	return signature.New(data)
}

// EncodeBlockData renders a set of transactions as block data.
func EncodeBlockData(txs []Transaction) (string, error) {
	data, err := json.Marshal(txs)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// DecodeBlockData parses block data back into a set of transactions.
func DecodeBlockData(data string) ([]Transaction, error) {
	var txs []Transaction
	if err := json.Unmarshal([]byte(data), &txs); err != nil {
		return nil, err
	}

	return txs, nil
}
