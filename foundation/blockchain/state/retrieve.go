package state

import (
	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/peer"
	"github.com/stecheiguess/crypto/foundation/blockchain/wallet"
)

// RetrieveChain returns a copy of the current chain.
func (s *State) RetrieveChain() []chain.Block {
	return s.chain.Blocks()
}

// RetrieveLatestBlock returns the tip of the chain.
func (s *State) RetrieveLatestBlock() chain.Block {
	return s.chain.Last()
}

// ValidateChain checks the linkage of the current chain.
func (s *State) ValidateChain() error {
	return s.chain.Validate()
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []ledger.Transaction {
	return s.pool.Copy()
}

// RetrieveAddress returns the address of the node wallet.
func (s *State) RetrieveAddress() ledger.Address {
	return s.wallet.Address()
}

// RetrieveBalance derives the balance of the node wallet.
func (s *State) RetrieveBalance() decimal.Decimal {
	return s.wallet.CalculateBalance(s.chain.Blocks())
}

// QueryBalance derives the balance of any address from the current chain.
func (s *State) QueryBalance(address ledger.Address) decimal.Decimal {
	return wallet.BalanceOf(address, s.chain.Blocks())
}

// RetrieveKnownPeers returns the peers that get notified, leaving out
// this node.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}
