package state

import (
	"github.com/stecheiguess/crypto/foundation/blockchain/peer"
)

// AddKnownPeer adds the host to the set of peers that get notified. The
// node's own host is never added.
func (s *State) AddKnownPeer(host string) bool {
	p := peer.New(host)
	if p.Host == "" || p.Match(s.host) {
		return false
	}

	if !s.knownPeers.Add(p) {
		return false
	}

	s.evHandler("state: AddKnownPeer: host[%s]", p.Host)
	return true
}

// RemoveKnownPeer stops notifying the host.
func (s *State) RemoveKnownPeer(host string) {
	p := peer.New(host)
	s.knownPeers.Remove(p)

	s.evHandler("state: RemoveKnownPeer: host[%s]", p.Host)
}

// RetrievePeerCount returns the number of known peers.
func (s *State) RetrievePeerCount() int {
	return s.knownPeers.Len()
}
