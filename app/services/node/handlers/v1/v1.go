// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/stecheiguess/crypto/app/services/node/handlers/v1/private"
	"github.com/stecheiguess/crypto/app/services/node/handlers/v1/public"
	"github.com/stecheiguess/crypto/foundation/blockchain/state"
	"github.com/stecheiguess/crypto/foundation/events"
	"github.com/stecheiguess/crypto/foundation/nameservice"
	"github.com/stecheiguess/crypto/foundation/web"
	"go.uber.org/zap"
)

const group = "api"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		Evts:  cfg.Evts,
	}
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, group, "/events", pbl.Events)
	app.Handle(http.MethodGet, group, "/chain/get", pbl.Chain)
	app.Handle(http.MethodGet, group, "/chain/validate", pbl.ValidateChain)
	app.Handle(http.MethodPost, group, "/chain/mine", pbl.MineData)
	app.Handle(http.MethodPost, group, "/chain/replace", prv.ReplaceChain)
	app.Handle(http.MethodGet, group, "/transaction/get", pbl.Mempool)
	app.Handle(http.MethodPost, group, "/transaction/create", pbl.SubmitWalletTransaction)
	app.Handle(http.MethodPost, group, "/transaction/update", prv.UpsertTransaction)
	app.Handle(http.MethodGet, group, "/public_key", pbl.PublicKey)
	app.Handle(http.MethodGet, group, "/balance", pbl.Balance)
	app.Handle(http.MethodGet, group, "/balance/:address", pbl.Balance)
	app.Handle(http.MethodGet, group, "/mine", pbl.MineTransactions)
}

// PrivateRoutes binds the routes peers use to notify this node.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodPost, "", "/chain", prv.ReplaceChain)
	app.Handle(http.MethodPost, "", "/transaction", prv.UpsertTransaction)
	app.Handle(http.MethodGet, "", "/peers", prv.KnownPeers)
	app.Handle(http.MethodPost, "", "/peers", prv.SubmitPeer)
	app.Handle(http.MethodDelete, "", "/peers", prv.RemovePeer)
}
