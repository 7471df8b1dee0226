// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stecheiguess/crypto/business/web/errs"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/state"
	"github.com/stecheiguess/crypto/foundation/events"
	"github.com/stecheiguess/crypto/foundation/nameservice"
	"github.com/stecheiguess/crypto/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Chain returns the current chain. A chain that fails validation is not
// handed out.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := h.State.ValidateChain(); err != nil {
		return fmt.Errorf("chain not valid: %w", err)
	}

	return web.Respond(ctx, w, h.State.RetrieveChain(), http.StatusOK)
}

// ValidateChain reports if the current chain is valid.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	info := chainInfo{
		Valid:  true,
		Height: latest.Height,
		Hash:   latest.Hash(),
	}

	if err := h.State.ValidateChain(); err != nil {
		info.Valid = false
		info.Error = err.Error()
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}

// MineData seals the provided data into a new block.
func (h Handlers) MineData(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var md mineData
	if err := web.Decode(r, &md); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	block := h.State.MineData(md.Data)

	h.Log.Infow("mine data", "traceid", web.GetTraceID(ctx), "block", block)

	return web.Respond(ctx, w, block, http.StatusCreated)
}

// MineTransactions seals the pending transactions into a new block.
func (h Handlers) MineTransactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.MineTransactions()
	if err != nil {
		return err
	}

	h.Log.Infow("mine transactions", "traceid", web.GetTraceID(ctx), "block", block)

	return web.Respond(ctx, w, block, http.StatusCreated)
}

// Mempool returns the set of pending transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// SubmitWalletTransaction pays value from the node wallet.
func (h Handlers) SubmitWalletTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit wallet tran", "traceid", web.GetTraceID(ctx), "receiver", ntx.Receiver, "amount", ntx.Amount)

	tx, err := h.State.SubmitWalletTransaction(ntx.Receiver, ntx.Amount)
	if err != nil {
		return errs.FromLedger(err)
	}

	return web.Respond(ctx, w, tx, http.StatusOK)
}

// PublicKey returns the address of the node wallet.
func (h Handlers) PublicKey(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Address ledger.Address `json:"address"`
	}{
		Address: h.State.RetrieveAddress(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balance returns the derived balance of the node wallet, or of the
// address provided in the path.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if param := web.Param(r, "address"); param != "" {
		address, err := ledger.ToAddress(param)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}

		info := balanceInfo{
			Address: address,
			Name:    h.NS.Lookup(address),
			Balance: h.State.QueryBalance(address),
		}

		return web.Respond(ctx, w, info, http.StatusOK)
	}

	info := balanceInfo{
		Address: h.State.RetrieveAddress(),
		Name:    h.NS.Lookup(h.State.RetrieveAddress()),
		Balance: h.State.RetrieveBalance(),
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}
