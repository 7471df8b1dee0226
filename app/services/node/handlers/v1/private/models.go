package private

import (
	"github.com/stecheiguess/crypto/business/sys/validate"
)

// newPeer is the payload a node sends to be notified of changes.
type newPeer struct {
	Host string `json:"host" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (n newPeer) Validate() error {
	return validate.Check(n)
}

// peerInfo describes the peers known to the node.
type peerInfo struct {
	Count int      `json:"count"`
	Hosts []string `json:"hosts"`
}
