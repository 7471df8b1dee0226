// Package signature provides helper functions for handling the blockchain
// hashing and signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// hashLength is the number of hex characters in a hash.
const hashLength = 64

// HashFormatError is returned when a value does not look like a hash.
type HashFormatError struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (hfe *HashFormatError) Error() string {
	return fmt.Sprintf("invalid hash %q: %s", hfe.Value, hfe.Reason)
}

// =============================================================================

// Hash represents a hex encoded SHA-256 digest.
type Hash string

// New hashes the data and returns the hex encoded digest.
func New(data []byte) (Hash, error) {
	sum := sha256.Sum256(data)
	return Parse(hex.EncodeToString(sum[:]))
}

// Blank returns the hash of all zeros that marks the genesis predecessor.
func Blank() Hash {
	return Hash(fmt.Sprintf("%064d", 0))
}

// Parse validates the string is a properly formatted hash.
func Parse(s string) (Hash, error) {
	if len(s) != hashLength {
		return "", &HashFormatError{Value: s, Reason: fmt.Sprintf("must be %d characters long", hashLength)}
	}

	for _, c := range []byte(s) {
		if !isHexCharacter(c) {
			return "", &HashFormatError{Value: s, Reason: "must contain only hexadecimal characters"}
		}
	}

	return Hash(s), nil
}

// Bytes returns the raw digest.
func (h Hash) Bytes() ([]byte, error) {
	return hex.DecodeString(string(h))
}

// LeadingZeroBits counts the number of 0 bits at the front of the binary
// expansion of the digest.
func (h Hash) LeadingZeroBits() int {
	data, err := h.Bytes()
	if err != nil {
		return 0
	}

	var zeros int
	for _, b := range data {
		if b != 0 {
			return zeros + bits.LeadingZeros8(b)
		}
		zeros += 8
	}

	return zeros
}

// String implements the fmt.Stringer interface.
func (h Hash) String() string {
	return string(h)
}

// UnmarshalJSON validates the format of a hash coming off the wire.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	hash, err := Parse(s)
	if err != nil {
		return err
	}

	*h = hash
	return nil
}

// =============================================================================

// Sign uses the specified private key to sign the hash. The signature is
// returned hex encoded in the [R|S|V] format.
func Sign(h Hash, privateKey *ecdsa.PrivateKey) (string, error) {
	digest, err := h.Bytes()
	if err != nil {
		return "", err
	}

	sig, err := crypto.Sign(digest, privateKey)
	if err != nil {
		return "", err
	}

	// Check the public key extracted from the data and signature.
	publicKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return "", err
	}

	rs := sig[:crypto.RecoveryIDOffset]
	if !crypto.VerifySignature(crypto.FromECDSAPub(publicKey), digest, rs) {
		return "", errors.New("invalid signature")
	}

	return hexutil.Encode(sig), nil
}

// Verify checks the signature was produced over the hash by the private key
// belonging to the specified public key.
func Verify(h Hash, sigStr string, publicKey []byte) error {
	digest, err := h.Bytes()
	if err != nil {
		return err
	}

	sig, err := hexutil.Decode(sigStr)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}

	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("invalid signature length %d", len(sig))
	}

	if !crypto.VerifySignature(publicKey, digest, sig[:crypto.RecoveryIDOffset]) {
		return errors.New("signature does not match")
	}

	return nil
}

// =============================================================================

// isHexCharacter returns bool of c being a valid lowercase hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}
