// Package mempool maintains the pending transactions waiting to be mined.
package mempool

import (
	"sync"

	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
)

// EventHandler defines a function that is called when events
// occur in the processing of the pool.
type EventHandler func(v string, args ...any)

// Pool represents a cache of pending transactions in insertion order. A
// sender has at most one pending transaction which gets amended in place.
type Pool struct {
	mu  sync.RWMutex
	txs []ledger.Transaction
}

// New constructs an empty pool.
func New() *Pool {
	return &Pool{}
}

// Count returns the current number of transactions in the pool.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.txs)
}

// Upsert adds or replaces a transaction in the pool. A transaction that
// fails verification is dropped and the error returned.
func (p *Pool) Upsert(tx ledger.Transaction) error {
	if err := tx.Verify(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tx = tx.Clone()

	for i := range p.txs {
		if p.txs[i].ID == tx.ID {
			p.txs[i] = tx
			return nil
		}
	}

	p.txs = append(p.txs, tx)

	return nil
}

// Check returns a copy of the pending transaction authored by the address.
func (p *Pool) Check(address ledger.Address) (ledger.Transaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, tx := range p.txs {
		if from, ok := tx.Sender(); ok && from == address {
			return tx.Clone(), true
		}
	}

	return ledger.Transaction{}, false
}

// Valid returns the transactions that conserve value and carry a good
// signature. Invalid transactions are reported and stay in the pool.
func (p *Pool) Valid(evHandler EventHandler) []ledger.Transaction {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	valid := make([]ledger.Transaction, 0, len(p.txs))
	for _, tx := range p.txs {
		if !tx.Conserves() {
			ev("mempool: Valid: invalid transaction[%s]: outputs[%s] don't match input", tx, tx.Total())
			continue
		}

		if err := tx.Verify(); err != nil {
			ev("mempool: Valid: invalid transaction[%s]: %s", tx, err)
			continue
		}

		valid = append(valid, tx.Clone())
	}

	return valid
}

// Clear removes all the transactions from the pool.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.txs = nil
}

// Copy returns a copy of every transaction in the pool.
func (p *Pool) Copy() []ledger.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	txs := make([]ledger.Transaction, len(p.txs))
	for i, tx := range p.txs {
		txs[i] = tx.Clone()
	}

	return txs
}
