// Package chain maintains the ordered set of blocks, performs the proof of
// work needed to append new blocks and decides between competing chains.
package chain

import (
	"fmt"
	"sync"

	"github.com/stecheiguess/crypto/foundation/blockchain/signature"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// LinkageError is returned when a block does not point at the hash of the
// block before it.
type LinkageError struct {
	Height   uint64
	Expected signature.Hash
	Got      signature.Hash
}

// Error implements the error interface.
func (le *LinkageError) Error() string {
	return fmt.Sprintf("blockchain is not valid: block %d prev hash %s doesn't match parent hash %s", le.Height, le.Got, le.Expected)
}

// =============================================================================

// Chain manages the set of blocks starting with the genesis block.
type Chain struct {
	mu        sync.RWMutex
	blocks    []Block
	evHandler EventHandler
}

// New constructs a chain holding only the genesis block.
func New(evHandler EventHandler) *Chain {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	return &Chain{
		blocks:    []Block{Genesis()},
		evHandler: ev,
	}
}

// Add mines a new block holding the data and appends it to the chain. The
// chain is locked for the whole duration of the mining.
func (c *Chain) Add(data string) Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	block := c.mine(data)
	c.blocks = append(c.blocks, block)

	return block
}

// Blocks returns a copy of the current set of blocks.
func (c *Chain) Blocks() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)

	return blocks
}

// Len returns the number of blocks including genesis.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// Last returns the tip of the chain.
func (c *Chain) Last() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[len(c.blocks)-1]
}

// Validate checks the linkage of the current chain.
func (c *Chain) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Validate(c.blocks)
}

// Replace swaps in the candidate chain if it is valid and wins the fork
// choice. A valid candidate that loses returns false with no error.
func (c *Chain) Replace(candidate []Block) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evHandler("chain: Replace: started: candidate blocks[%d]", len(candidate))
	defer c.evHandler("chain: Replace: completed")

	if err := Validate(candidate); err != nil {
		c.evHandler("chain: Replace: new chain is not valid: %s", err)
		return false, err
	}

	if !wins(candidate, c.blocks) {
		c.evHandler("chain: Replace: rejected: candidate blocks[%d]: current blocks[%d]", len(candidate), len(c.blocks))
		return false, nil
	}

	blocks := make([]Block, len(candidate))
	copy(blocks, candidate)
	c.blocks = blocks

	c.evHandler("chain: Replace: accepted: blocks[%d]: tip[%s]", len(c.blocks), c.blocks[len(c.blocks)-1])

	return true, nil
}

// =============================================================================

// mine performs the proof of work search for the next block. Every failed
// attempt refreshes the timestamp, moves the nonce and retargets the
// difficulty against the parent block.
func (c *Chain) mine(data string) Block {
	parent := c.blocks[len(c.blocks)-1]
	block := NewBlock(parent, data)

	c.evHandler("chain: mine: MINING: started: height[%d]: difficulty[%d]", block.Height, block.Difficulty)

	var attempts uint64
	for !block.IsSolved() {
		attempts++
		if attempts%1_000_000 == 0 {
			c.evHandler("chain: mine: MINING: attempts[%d]", attempts)
		}

		block.TimeStamp = now()
		block.Nonce++
		block.Difficulty = Retarget(parent, block.TimeStamp)
	}

	c.evHandler("chain: mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: difficulty[%d]: attempts[%d]", block.Prev, block.Hash(), block.Difficulty, attempts)

	return block
}

// =============================================================================

// Validate checks that every block after genesis points at the hash of the
// block before it. Genesis is trusted by construction.
func Validate(blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		expected := blocks[i-1].Hash()
		if blocks[i].Prev != expected {
			return &LinkageError{
				Height:   uint64(i),
				Expected: expected,
				Got:      blocks[i].Prev,
			}
		}
	}

	return nil
}

// wins applies the fork choice rule. A longer candidate wins. An equal length
// candidate only wins when its last nonce is strictly greater.
func wins(candidate []Block, current []Block) bool {
	switch {
	case len(candidate) > len(current):
		return true

	case len(candidate) == len(current) && len(candidate) > 0:
		return candidate[len(candidate)-1].Nonce > current[len(current)-1].Nonce
	}

	return false
}
