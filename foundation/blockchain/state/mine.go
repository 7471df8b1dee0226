package state

import (
	"fmt"

	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/mempool"
)

// MineTransactions seals the valid pending transactions plus a reward for
// the node wallet into a new block. The pool is cleared once the block is
// added and the new chain is shared with the known peers.
func (s *State) MineTransactions() (chain.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineTransactions: MINING: started: txs[%d]", s.pool.Count())
	defer s.evHandler("state: MineTransactions: MINING: completed")

	txs := s.pool.Valid(mempool.EventHandler(s.evHandler))
	txs = append(txs, ledger.Reward(s.wallet.Address()))

	data, err := ledger.EncodeBlockData(txs)
	if err != nil {
		return chain.Block{}, fmt.Errorf("encoding block data: %w", err)
	}

	block := s.chain.Add(data)
	s.pool.Clear()

	s.metrics.BlockMined(block.Height)
	s.metrics.PoolChanged(0)

	balance := s.wallet.CalculateBalance(s.chain.Blocks())
	s.evHandler("state: MineTransactions: MINING: block[%s]: txs[%d]: balance[%s]", block, len(txs), balance)

	s.worker.signalShareChain()

	return block, nil
}

// MineData seals arbitrary data into a new block.
func (s *State) MineData(data string) chain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineData: MINING: started")
	defer s.evHandler("state: MineData: MINING: completed")

	block := s.chain.Add(data)
	s.metrics.BlockMined(block.Height)

	s.worker.signalShareChain()

	return block
}

// ReplaceChain adopts the candidate chain when it's valid and wins the fork
// choice. A losing candidate returns false with no error.
func (s *State) ReplaceChain(blocks []chain.Block) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced, err := s.chain.Replace(blocks)
	if err != nil {
		s.metrics.ChainReplaced(ReplaceInvalid, s.chain.Last().Height)
		return false, err
	}

	if !replaced {
		s.metrics.ChainReplaced(ReplaceRejected, s.chain.Last().Height)
		return false, nil
	}

	balance := s.wallet.CalculateBalance(s.chain.Blocks())
	s.evHandler("state: ReplaceChain: adopted blocks[%d]: balance[%s]", len(blocks), balance)

	s.metrics.ChainReplaced(ReplaceAdopted, s.chain.Last().Height)

	return true, nil
}
