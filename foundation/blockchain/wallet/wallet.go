// Package wallet provides key custody, transaction issuance and balance
// derivation by replaying the chain.
package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/signature"
)

// InitialBalance is the amount every identity starts with before it has
// spent anything.
var InitialBalance = decimal.NewFromInt(50)

// Pool represents the behavior required from the pending transaction pool
// to send value.
type Pool interface {
	Check(address ledger.Address) (ledger.Transaction, bool)
	Upsert(tx ledger.Transaction) error
}

// =============================================================================

// Wallet holds a private key and the balance last derived from the chain.
type Wallet struct {
	mu         sync.RWMutex
	balance    decimal.Decimal
	privateKey *ecdsa.PrivateKey
	address    ledger.Address
}

// New constructs a wallet with a freshly generated key.
func New() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	return FromKey(privateKey), nil
}

// FromKey constructs a wallet for the specified private key.
func FromKey(privateKey *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		balance:    InitialBalance,
		privateKey: privateKey,
		address:    ledger.PublicKeyToAddress(privateKey.PublicKey),
	}
}

// Load constructs a wallet from the private key stored in the file.
func Load(path string) (*Wallet, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("loading key %q: %w", path, err)
	}

	return FromKey(privateKey), nil
}

// Save writes the private key to the file so the wallet can be loaded
// again later.
func (w *Wallet) Save(path string) error {
	if err := crypto.SaveECDSA(path, w.privateKey); err != nil {
		return fmt.Errorf("saving key %q: %w", path, err)
	}

	return nil
}

// Address returns the identity of the wallet.
func (w *Wallet) Address() ledger.Address {
	return w.address
}

// Balance returns the balance last derived from the chain.
func (w *Wallet) Balance() decimal.Decimal {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.balance
}

// Sign signs the hash with the wallet's private key.
func (w *Wallet) Sign(h signature.Hash) (string, error) {
	return signature.Sign(h, w.privateKey)
}

// CalculateBalance derives the balance from the blocks and keeps it as the
// wallet's current balance.
func (w *Wallet) CalculateBalance(blocks []chain.Block) decimal.Decimal {
	balance := BalanceOf(w.address, blocks)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.balance = balance

	return balance
}

// Send pays the amount to the receiver. A pending transaction from this
// wallet is amended, otherwise a new one is created. The result is upserted
// into the pool.
func (w *Wallet) Send(receiver ledger.Address, amount decimal.Decimal, blocks []chain.Block, pool Pool) (ledger.Transaction, error) {
	balance := w.CalculateBalance(blocks)
	if amount.GreaterThan(balance) {
		return ledger.Transaction{}, &ledger.AmountError{Requested: amount, Available: balance}
	}

	tx, exists := pool.Check(w.address)
	if exists {
		if err := tx.Update(w, receiver, amount); err != nil {
			return ledger.Transaction{}, err
		}
	} else {
		var err error
		if tx, err = ledger.NewTransaction(w, receiver, amount); err != nil {
			return ledger.Transaction{}, err
		}
	}

	if err := pool.Upsert(tx); err != nil {
		return ledger.Transaction{}, err
	}

	return tx, nil
}
