package ledger

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
)

// Address represents the identity of a wallet. It is the hex encoded
// compressed form of the wallet's public key.
type Address string

// ToAddress converts a hex-encoded string to an address and validates the
// string holds a compressed public key.
func ToAddress(s string) (Address, error) {
	a := Address(s)
	if !a.IsAddress() {
		return "", errors.New("invalid address format")
	}

	return a, nil
}

// PublicKeyToAddress converts the public key to an address value.
func PublicKeyToAddress(pk ecdsa.PublicKey) Address {
	return Address(hex.EncodeToString(crypto.CompressPubkey(&pk)))
}

// PublicKey returns the compressed public key bytes behind the address.
func (a Address) PublicKey() ([]byte, error) {
	return hex.DecodeString(string(a))
}

// IsAddress verifies whether the underlying data represents a valid
// compressed public key.
func (a Address) IsAddress() bool {
	b, err := a.PublicKey()
	if err != nil {
		return false
	}

	if _, err := crypto.DecompressPubkey(b); err != nil {
		return false
	}

	return true
}
