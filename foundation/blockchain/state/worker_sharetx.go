package state

import (
	"net/http"

	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
)

// maxTxShareRequests represents the max number of pending tx network share
// requests that can be outstanding before share requests are dropped. If
// the channel does become full, requests for new transactions to be shared
// will not be accepted.
const maxTxShareRequests = 100

// =============================================================================

// signalShareTx queues up sharing a transaction with the peers. If
// maxTxShareRequests signals exist in the channel, we won't send these.
func (w *worker) signalShareTx(tx ledger.Transaction) {
	select {
	case w.txSharing <- tx:
		w.evHandler("worker: signalShareTx: share Tx signaled")
	default:
		w.evHandler("worker: signalShareTx: queue full, transactions won't be shared.")
	}
}

// shareTxOperations handles sharing new wallet transactions.
func (w *worker) shareTxOperations() {
	w.evHandler("worker: shareTxOperations: G started")
	defer w.evHandler("worker: shareTxOperations: G completed")

	for {
		select {
		case tx := <-w.txSharing:
			if !w.isShutdown() {
				w.runShareTxOperation(tx)
			}
		case <-w.shut:
			w.evHandler("worker: shareTxOperations: received shut signal")
			return
		}
	}
}

// runShareTxOperation sends the transaction to the known peers.
func (w *worker) runShareTxOperation(tx ledger.Transaction) {
	w.evHandler("worker: runShareTxOperation: started")
	defer w.evHandler("worker: runShareTxOperation: completed")

	for _, peer := range w.state.RetrieveKnownPeers() {
		if err := w.send(http.MethodPost, peer.URL("/transaction"), tx); err != nil {
			w.evHandler("worker: runShareTxOperation: WARNING: %s: %s", peer.Host, err)
		}
	}
}
