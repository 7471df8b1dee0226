// Package state is the core API for the node and implements the business
// rules that tie the chain, the pending pool and the node wallet together.
package state

import (
	"errors"
	"sync"
	"time"

	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/mempool"
	"github.com/stecheiguess/crypto/foundation/blockchain/peer"
	"github.com/stecheiguess/crypto/foundation/blockchain/wallet"
)

// EventHandler defines a function that is called when events
// occur in the processing of the node.
type EventHandler func(v string, args ...any)

// EventPrefixes names the subsystems that raise events through the
// EventHandler.
var EventPrefixes = []string{"chain:", "mempool:", "state:", "worker:"}

// Metrics receives the measurements of the node as the chain and the pool
// change.
type Metrics interface {
	BlockMined(height uint64)
	ChainReplaced(outcome string, height uint64)
	PoolChanged(size int)
}

// Outcomes reported to ChainReplaced.
const (
	ReplaceAdopted  = "adopted"
	ReplaceRejected = "rejected"
	ReplaceInvalid  = "invalid"
)

type noMetrics struct{}

func (noMetrics) BlockMined(uint64) {}
func (noMetrics) ChainReplaced(string, uint64) {}
func (noMetrics) PoolChanged(int) {}

// =============================================================================

// Config represents the configuration required to start the node.
type Config struct {
	Host         string
	Wallet       *wallet.Wallet
	KnownPeers   *peer.PeerSet
	MineInterval time.Duration // Zero turns off mining on a timer.
	ShareRate    int           // Peer requests per second, zero is unlimited.
	Metrics      Metrics
	EvHandler    EventHandler
}

// State manages the chain, the pool and the wallet of the node.
type State struct {
	mu         sync.Mutex
	host       string
	evHandler  EventHandler
	metrics    Metrics
	knownPeers *peer.PeerSet

	chain  *chain.Chain
	pool   *mempool.Pool
	wallet *wallet.Wallet

	worker *worker
}

// New constructs the node state and starts the background workers.
func New(cfg Config) (*State, error) {
	if cfg.Wallet == nil {
		return nil, errors.New("a wallet is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noMetrics{}
	}

	state := State{
		host:       cfg.Host,
		evHandler:  ev,
		metrics:    metrics,
		knownPeers: knownPeers,

		chain:  chain.New(ev),
		pool:   mempool.New(),
		wallet: cfg.Wallet,
	}

	state.wallet.CalculateBalance(state.chain.Blocks())

	runWorker(&state, cfg.MineInterval, cfg.ShareRate)

	return &state, nil
}

// Shutdown cleanly brings the node down. A block being mined is allowed to
// finish first.
func (s *State) Shutdown() error {
	s.worker.shutdown()

	return nil
}
