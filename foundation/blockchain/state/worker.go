package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"go.uber.org/ratelimit"
)

// peerTimeout bounds a single notification to a peer.
const peerTimeout = 5 * time.Second

// =============================================================================

// worker manages the background workflows for the node.
type worker struct {
	state        *State
	wg           sync.WaitGroup
	ticker       *time.Ticker
	tick         <-chan time.Time
	shut         chan struct{}
	chainSharing chan bool
	txSharing    chan ledger.Transaction
	limiter      ratelimit.Limiter
	client       http.Client
	evHandler    EventHandler
}

// runWorker constructs the worker, registers it with the state and starts
// the operational goroutines.
func runWorker(state *State, mineInterval time.Duration, shareRate int) {
	limiter := ratelimit.NewUnlimited()
	if shareRate > 0 {
		limiter = ratelimit.New(shareRate)
	}

	w := worker{
		state:        state,
		shut:         make(chan struct{}),
		chainSharing: make(chan bool, 1),
		txSharing:    make(chan ledger.Transaction, maxTxShareRequests),
		limiter:      limiter,
		client:       http.Client{Timeout: peerTimeout},
		evHandler:    state.evHandler,
	}

	// A nil tick channel never fires.
	if mineInterval > 0 {
		w.ticker = time.NewTicker(mineInterval)
		w.tick = w.ticker.C
	}

	state.worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
		w.shareChainOperations,
		w.shareTxOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for i := 0; i < g; i++ {
		<-hasStarted
	}
}

// shutdown terminates the goroutines performing work.
func (w *worker) shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	if w.ticker != nil {
		w.evHandler("worker: shutdown: stop ticker")
		w.ticker.Stop()
	}

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}

// =============================================================================

// send is a helper function to send an HTTP request to a peer.
func (w *worker) send(method string, url string, dataSend any) error {
	w.limiter.Take()

	var body io.Reader
	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return errors.New(resp.Status + ": " + string(msg))
	}

	return nil
}
