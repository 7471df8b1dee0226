package state

import (
	"net/http"
)

// miningOperations mines the pending transactions every time the ticker
// fires and the pool isn't empty.
func (w *worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.tick:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation takes the pending transactions from the pool and
// writes a new block to the chain.
func (w *worker) runMiningOperation() {
	if w.state.pool.Count() == 0 {
		w.evHandler("worker: runMiningOperation: MINING: nothing to mine")
		return
	}

	block, err := w.state.MineTransactions()
	if err != nil {
		w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: block[%s]", block)
}

// =============================================================================

// signalShareChain queues up sharing the chain with the peers. Pending
// signals are coalesced since the latest chain is read when the share runs.
func (w *worker) signalShareChain() {
	select {
	case w.chainSharing <- true:
		w.evHandler("worker: signalShareChain: share chain signaled")
	default:
	}
}

// shareChainOperations handles sharing the chain after it changes.
func (w *worker) shareChainOperations() {
	w.evHandler("worker: shareChainOperations: G started")
	defer w.evHandler("worker: shareChainOperations: G completed")

	for {
		select {
		case <-w.chainSharing:
			if !w.isShutdown() {
				w.runShareChainOperation()
			}
		case <-w.shut:
			w.evHandler("worker: shareChainOperations: received shut signal")
			return
		}
	}
}

// runShareChainOperation sends the current chain to the known peers.
func (w *worker) runShareChainOperation() {
	w.evHandler("worker: runShareChainOperation: started")
	defer w.evHandler("worker: runShareChainOperation: completed")

	blocks := w.state.RetrieveChain()

	for _, peer := range w.state.RetrieveKnownPeers() {
		if err := w.send(http.MethodPost, peer.URL("/chain"), blocks); err != nil {
			w.evHandler("worker: runShareChainOperation: WARNING: %s: %s", peer.Host, err)
			continue
		}

		w.evHandler("worker: runShareChainOperation: sent to peer[%s]: blocks[%d]", peer.Host, len(blocks))
	}
}
