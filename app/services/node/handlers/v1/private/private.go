// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"net/http"

	"github.com/stecheiguess/crypto/business/web/errs"
	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/state"
	"github.com/stecheiguess/crypto/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// ReplaceChain offers a candidate chain from a peer. The chain is adopted
// only when it's valid and wins the fork choice.
func (h Handlers) ReplaceChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var blocks []chain.Block
	if err := web.Decode(r, &blocks); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	replaced, err := h.State.ReplaceChain(blocks)
	if err != nil {
		return errs.FromLedger(err)
	}

	resp := struct {
		Replaced bool   `json:"replaced"`
		Height   uint64 `json:"height"`
	}{
		Replaced: replaced,
		Height:   h.State.RetrieveLatestBlock().Height,
	}

	outcome := "rejected"
	if replaced {
		outcome = "adopted"
	}

	h.Log.Infow("replace chain", "traceid", web.GetTraceID(ctx), "candidate", len(blocks), "outcome", outcome)

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// UpsertTransaction adds a signed transaction to the pool. A transaction
// that fails verification is dropped.
func (h Handlers) UpsertTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var tx ledger.Transaction
	if err := web.Decode(r, &tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	status := "dropped"
	if h.State.UpsertNodeTransaction(tx) {
		status = "accepted"
	}

	h.Log.Infow("upsert tran", "traceid", web.GetTraceID(ctx), "tx", tx, "status", status)

	resp := struct {
		Status string `json:"status"`
	}{
		Status: status,
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// KnownPeers returns the hosts of the peers that get notified.
func (h Handlers) KnownPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	info := peerInfo{
		Count: h.State.RetrievePeerCount(),
		Hosts: []string{},
	}
	for _, p := range h.State.RetrieveKnownPeers() {
		info.Hosts = append(info.Hosts, p.Host)
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}

// SubmitPeer adds the host of a node that wants to be notified.
func (h Handlers) SubmitPeer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var np newPeer
	if err := web.Decode(r, &np); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	status := "known"
	if h.State.AddKnownPeer(np.Host) {
		status = "added"
	}

	h.Log.Infow("submit peer", "traceid", web.GetTraceID(ctx), "host", np.Host, "status", status)

	resp := struct {
		Status string `json:"status"`
	}{
		Status: status,
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// RemovePeer stops notifying the host of a node that is leaving.
func (h Handlers) RemovePeer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var np newPeer
	if err := web.Decode(r, &np); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.State.RemoveKnownPeer(np.Host)

	h.Log.Infow("remove peer", "traceid", web.GetTraceID(ctx), "host", np.Host)

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}
