package state

import (
	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
)

// SubmitWalletTransaction pays the amount from the node wallet to the
// receiver and shares the pending transaction with the known peers.
func (s *State) SubmitWalletTransaction(receiver ledger.Address, amount decimal.Decimal) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.wallet.Send(receiver, amount, s.chain.Blocks(), s.pool)
	if err != nil {
		s.evHandler("state: SubmitWalletTransaction: rejected: receiver[%s]: amount[%s]: %s", receiver, amount, err)
		return ledger.Transaction{}, err
	}

	s.evHandler("state: SubmitWalletTransaction: tx[%s]: outputs[%d]", tx, len(tx.Outputs))
	s.metrics.PoolChanged(s.pool.Count())

	s.worker.signalShareTx(tx)

	return tx, nil
}

// UpsertNodeTransaction adds a transaction submitted by a peer or client to
// the pool. A transaction that fails verification is logged and dropped.
func (s *State) UpsertNodeTransaction(tx ledger.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pool.Upsert(tx); err != nil {
		s.evHandler("state: UpsertNodeTransaction: dropped tx[%s]: %s", tx, err)
		return false
	}

	s.evHandler("state: UpsertNodeTransaction: tx[%s]: pool[%d]", tx, s.pool.Count())
	s.metrics.PoolChanged(s.pool.Count())

	return true
}
