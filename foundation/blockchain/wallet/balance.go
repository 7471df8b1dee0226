package wallet

import (
	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
)

// entry is a transaction found in the chain along with where it was found.
type entry struct {
	tx        ledger.Transaction
	height    uint64
	timeStamp uint64
}

// BalanceOf derives the balance for the address by replaying the blocks.
//
// The most recent transaction sent by the address is the checkpoint: its
// change output becomes the balance. Every output paid to the address by a
// transaction stamped after the checkpoint is added on top. Rewards carry no
// input, so a reward counts when it sits in the checkpoint's block or later.
// Without a checkpoint the balance starts at InitialBalance and everything
// paid to the address counts.
func BalanceOf(address ledger.Address, blocks []chain.Block) decimal.Decimal {
	entries := replay(blocks)

	balance := InitialBalance

	var checkpoint *entry
	for i := range entries {
		from, ok := entries[i].tx.Sender()
		if !ok || from != address {
			continue
		}

		if checkpoint == nil || entries[i].timeStamp >= checkpoint.timeStamp {
			checkpoint = &entries[i]
		}
	}

	if checkpoint != nil {
		balance = paidTo(address, checkpoint.tx)
	}

	for i := range entries {
		if counts(&entries[i], checkpoint) {
			balance = balance.Add(paidTo(address, entries[i].tx))
		}
	}

	return balance
}

// replay decodes the transactions held by every block. Blocks whose data
// isn't a set of transactions contribute nothing.
func replay(blocks []chain.Block) []entry {
	var entries []entry

	for _, blk := range blocks {
		txs, err := ledger.DecodeBlockData(blk.Data)
		if err != nil {
			continue
		}

		for _, tx := range txs {
			ts := blk.TimeStamp
			if tx.Input != nil {
				ts = tx.Input.TimeStamp
			}

			entries = append(entries, entry{tx: tx, height: blk.Height, timeStamp: ts})
		}
	}

	return entries
}

// counts reports whether the entry was paid after the checkpoint.
func counts(e *entry, checkpoint *entry) bool {
	switch {
	case checkpoint == nil:
		return true
	case e == checkpoint:
		return false
	case e.tx.Input == nil:
		return e.height >= checkpoint.height
	}

	return e.timeStamp > checkpoint.timeStamp
}

// paidTo sums the outputs of the transaction addressed to the address.
func paidTo(address ledger.Address, tx ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, out := range tx.Outputs {
		if out.Address == address {
			total = total.Add(out.Amount)
		}
	}

	return total
}
