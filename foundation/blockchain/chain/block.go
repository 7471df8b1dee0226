package chain

import (
	"fmt"
	"time"

	"github.com/stecheiguess/crypto/foundation/blockchain/signature"
)

// GenesisDifficulty is the number of leading zero bits the chain starts with.
const GenesisDifficulty = 5

// MineRate is the target number of seconds between a block and its parent.
const MineRate = 1

// =============================================================================

// Block represents a unit of data sealed into the chain by proof of work.
type Block struct {
	TimeStamp  uint64         `json:"timestamp"`  // Time the block was last attempted.
	Nonce      uint64         `json:"nonce"`      // Value identified to solve the hash solution.
	Prev       signature.Hash `json:"prev"`       // Hash of the previous block in the chain.
	Height     uint64         `json:"height"`     // Position in the chain, genesis is 0.
	Data       string         `json:"data"`       // Opaque payload, usually a list of transactions.
	Difficulty uint           `json:"difficulty"` // Number of leading 0 bits needed to solve the hash.
}

// Genesis returns the fixed first block of every chain.
func Genesis() Block {
	return Block{
		TimeStamp:  0,
		Nonce:      0,
		Prev:       signature.Blank(),
		Height:     0,
		Data:       "",
		Difficulty: GenesisDifficulty,
	}
}

// NewBlock constructs an unsolved block that follows the previous block.
func NewBlock(prev Block, data string) Block {
	return Block{
		TimeStamp:  now(),
		Nonce:      0,
		Prev:       prev.Hash(),
		Height:     prev.Height + 1,
		Data:       data,
		Difficulty: prev.Difficulty,
	}
}

// Hash returns the unique hash for the Block. The fields are rendered as text
// and concatenated with no separators in this exact order so other nodes
// validating the same chain compute the same hash.
func (b Block) Hash() signature.Hash {
	s := fmt.Sprintf("%d%s%d%s%d%d", b.TimeStamp, b.Prev, b.Nonce, b.Data, b.Height, b.Difficulty)

	// A sha256 digest always hex encodes to a valid hash.
	h, err := signature.New([]byte(s))
	if err != nil {
		return signature.Blank()
	}

	return h
}

// IsSolved checks the hash to make sure it complies with the POW rules. We
// need to match a difficulty number of leading 0 bits.
func (b Block) IsSolved() bool {
	return b.Hash().LeadingZeroBits() >= int(b.Difficulty)
}

// String implements the fmt.Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("%d:%s", b.Height, b.Hash())
}

// =============================================================================

// Retarget calculates the difficulty for a block being mined at the specified
// time. If the parent was mined more than MineRate seconds ago the difficulty
// drops by one, otherwise it rises by one. It never drops below 1.
func Retarget(parent Block, timeStamp uint64) uint {
	if parent.Difficulty < 1 {
		return 1
	}

	elapsed := int64(timeStamp) - int64(parent.TimeStamp)
	if elapsed > MineRate {
		if parent.Difficulty == 1 {
			return 1
		}
		return parent.Difficulty - 1
	}

	return parent.Difficulty + 1
}

// now is the clock used for block timestamps.
var now = func() uint64 {
	return uint64(time.Now().UTC().Unix())
}
