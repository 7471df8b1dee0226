package ledger_test

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// signer is a minimal wallet used to author transactions. The signing key
// can be swapped to produce signatures that don't match the address.
type signer struct {
	key     *ecdsa.PrivateKey
	signKey *ecdsa.PrivateKey
	balance decimal.Decimal
}

func newSigner(t *testing.T, balance int64) *signer {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	return &signer{key: key, signKey: key, balance: decimal.NewFromInt(balance)}
}

func (s *signer) Address() ledger.Address {
	return ledger.PublicKeyToAddress(s.key.PublicKey)
}

func (s *signer) Balance() decimal.Decimal {
	return s.balance
}

func (s *signer) Sign(h signature.Hash) (string, error) {
	return signature.Sign(h, s.signKey)
}

// =============================================================================

func Test_NewTransaction(t *testing.T) {
	t.Log("Given the need to construct signed transactions.")
	{
		sender := newSigner(t, 50)
		receiver := newSigner(t, 50)

		t.Logf("\tTest 0:\tWhen the sender has enough balance.")
		{
			tx, err := ledger.NewTransaction(sender, receiver.Address(), decimal.NewFromInt(10))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a transaction: %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct a transaction.", success)

			if len(tx.Outputs) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have two outputs, got %d.", failed, len(tx.Outputs))
			}

			if tx.Outputs[0].Address != sender.Address() || !tx.Outputs[0].Amount.Equal(decimal.NewFromInt(40)) {
				t.Fatalf("\t%s\tTest 0:\tShould pay the change back to the sender: %+v", failed, tx.Outputs[0])
			}
			t.Logf("\t%s\tTest 0:\tShould pay the change back to the sender.", success)

			if tx.Outputs[1].Address != receiver.Address() || !tx.Outputs[1].Amount.Equal(decimal.NewFromInt(10)) {
				t.Fatalf("\t%s\tTest 0:\tShould pay the receiver: %+v", failed, tx.Outputs[1])
			}
			t.Logf("\t%s\tTest 0:\tShould pay the receiver.", success)

			if !tx.Conserves() || !tx.Input.Amount.Equal(decimal.NewFromInt(50)) {
				t.Fatalf("\t%s\tTest 0:\tShould conserve the input amount.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould conserve the input amount.", success)

			if err := tx.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to verify the transaction: %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to verify the transaction.", success)
		}

		t.Logf("\tTest 1:\tWhen the sender asks for more than the balance.")
		{
			tx, err := ledger.NewTransaction(sender, receiver.Address(), decimal.NewFromInt(60))

			var ae *ledger.AmountError
			if !errors.As(err, &ae) {
				t.Fatalf("\t%s\tTest 1:\tShould get an amount error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get an amount error.", success)

			if tx.ID != "" || tx.Input != nil {
				t.Fatalf("\t%s\tTest 1:\tShould not produce a transaction.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not produce a transaction.", success)

			for _, amount := range []int64{0, -5} {
				_, err := ledger.NewTransaction(sender, receiver.Address(), decimal.NewFromInt(amount))
				if !errors.As(err, &ae) {
					t.Fatalf("\t%s\tTest 1:\tShould reject an amount of %d: %v", failed, amount, err)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould reject amounts that aren't positive.", success)
		}

		t.Logf("\tTest 2:\tWhen the signature doesn't belong to the sender.")
		{
			bad := newSigner(t, 50)
			bad.signKey = receiver.key

			_, err := ledger.NewTransaction(bad, receiver.Address(), decimal.NewFromInt(10))

			var se *ledger.SignatureError
			if !errors.As(err, &se) {
				t.Fatalf("\t%s\tTest 2:\tShould get a signature error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get a signature error.", success)
		}
	}
}

func Test_Update(t *testing.T) {
	t.Log("Given the need to amend a pending transaction.")
	{
		sender := newSigner(t, 50)
		receiver := newSigner(t, 50)

		tx, err := ledger.NewTransaction(sender, receiver.Address(), decimal.NewFromInt(10))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %s", failed, err)
		}

		t.Logf("\tTest 0:\tWhen the sender output covers the amount.")
		{
			if err := tx.Update(sender, receiver.Address(), decimal.NewFromInt(15)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to update the transaction: %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to update the transaction.", success)

			if len(tx.Outputs) != 3 || !tx.Outputs[0].Amount.Equal(decimal.NewFromInt(25)) {
				t.Fatalf("\t%s\tTest 0:\tShould move the amount out of the sender output: %+v", failed, tx.Outputs)
			}
			t.Logf("\t%s\tTest 0:\tShould move the amount out of the sender output.", success)

			if !tx.Conserves() {
				t.Fatalf("\t%s\tTest 0:\tShould conserve the input amount.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould conserve the input amount.", success)

			if err := tx.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to verify the new signature: %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to verify the new signature.", success)
		}

		t.Logf("\tTest 1:\tWhen the amount exceeds the sender output.")
		{
			before := tx.Clone()

			err := tx.Update(sender, receiver.Address(), decimal.NewFromInt(26))

			var ae *ledger.AmountError
			if !errors.As(err, &ae) {
				t.Fatalf("\t%s\tTest 1:\tShould get an amount error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get an amount error.", success)

			if !equal(before, tx) {
				t.Fatalf("\t%s\tTest 1:\tShould leave the transaction unchanged.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the transaction unchanged.", success)
		}

		t.Logf("\tTest 2:\tWhen the new signature fails verification.")
		{
			before := tx.Clone()

			bad := *sender
			bad.signKey = receiver.key

			err := tx.Update(&bad, receiver.Address(), decimal.NewFromInt(5))

			var se *ledger.SignatureError
			if !errors.As(err, &se) {
				t.Fatalf("\t%s\tTest 2:\tShould get a signature error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get a signature error.", success)

			if !equal(before, tx) {
				t.Fatalf("\t%s\tTest 2:\tShould roll back to the snapshot.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould roll back to the snapshot.", success)

			if err := tx.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould still verify after the roll back: %s", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould still verify after the roll back.", success)
		}

		t.Logf("\tTest 3:\tWhen a stranger tries to amend the transaction.")
		{
			stranger := newSigner(t, 50)

			err := tx.Update(stranger, receiver.Address(), decimal.NewFromInt(1))

			var ae *ledger.AmountError
			if !errors.As(err, &ae) {
				t.Fatalf("\t%s\tTest 3:\tShould get an amount error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould get an amount error.", success)
		}

		t.Logf("\tTest 4:\tWhen the sender balance changed while the transaction was pending.")
		{
			sender.balance = decimal.NewFromInt(100)

			if err := tx.Update(sender, receiver.Address(), decimal.NewFromInt(5)); err != nil {
				t.Fatalf("\t%s\tTest 4:\tShould be able to update the transaction: %s", failed, err)
			}
			t.Logf("\t%s\tTest 4:\tShould be able to update the transaction.", success)

			if !tx.Input.Amount.Equal(decimal.NewFromInt(50)) || !tx.Conserves() {
				t.Fatalf("\t%s\tTest 4:\tShould keep the input amount the outputs sum to, got %s.", failed, tx.Input.Amount)
			}
			t.Logf("\t%s\tTest 4:\tShould keep the input amount the outputs sum to.", success)

			if err := tx.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 4:\tShould be able to verify the new signature: %s", failed, err)
			}
			t.Logf("\t%s\tTest 4:\tShould be able to verify the new signature.", success)
		}

		t.Logf("\tTest 5:\tWhen amending a reward.")
		{
			reward := ledger.Reward(sender.Address())

			var se *ledger.SignatureError
			if err := reward.Update(sender, receiver.Address(), decimal.NewFromInt(1)); !errors.As(err, &se) {
				t.Fatalf("\t%s\tTest 5:\tShould get a signature error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 5:\tShould get a signature error.", success)
		}
	}
}

func Test_Reward(t *testing.T) {
	miner := newSigner(t, 0)

	tx := ledger.Reward(miner.Address())

	if tx.Input != nil {
		t.Fatalf("Should not have an input.")
	}

	if len(tx.Outputs) != 1 || tx.Outputs[0].Address != miner.Address() || !tx.Outputs[0].Amount.Equal(ledger.MiningReward) {
		t.Fatalf("Should pay the mining reward to the miner: %+v", tx.Outputs)
	}

	var se *ledger.SignatureError
	if err := tx.Verify(); !errors.As(err, &se) {
		t.Fatalf("Should not be able to verify a reward: %v", err)
	}

	if tx.Conserves() {
		t.Fatalf("Should not pass the conservation check.")
	}
}

func Test_Tampering(t *testing.T) {
	sender := newSigner(t, 50)
	receiver := newSigner(t, 50)

	tx, err := ledger.NewTransaction(sender, receiver.Address(), decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Should be able to construct a transaction: %s", err)
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Should be able to marshal the transaction: %s", err)
	}

	var wire ledger.Transaction
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("Should be able to unmarshal the transaction: %s", err)
	}

	if err := wire.Verify(); err != nil {
		t.Fatalf("Should be able to verify a transaction off the wire: %s", err)
	}

	wire.Outputs[1].Amount = decimal.NewFromInt(40)
	if err := wire.Verify(); err == nil {
		t.Fatalf("Should not be able to verify a tampered transaction.")
	}
}

func Test_BlockData(t *testing.T) {
	sender := newSigner(t, 50)
	receiver := newSigner(t, 50)

	tx, err := ledger.NewTransaction(sender, receiver.Address(), decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Should be able to construct a transaction: %s", err)
	}

	data, err := ledger.EncodeBlockData([]ledger.Transaction{tx, ledger.Reward(sender.Address())})
	if err != nil {
		t.Fatalf("Should be able to encode block data: %s", err)
	}

	txs, err := ledger.DecodeBlockData(data)
	if err != nil {
		t.Fatalf("Should be able to decode block data: %s", err)
	}

	if len(txs) != 2 || txs[0].ID != tx.ID || txs[1].Input != nil {
		t.Fatalf("Should get back the same transactions: %+v", txs)
	}

	if _, err := ledger.DecodeBlockData(""); err == nil {
		t.Fatalf("Should not be able to decode empty block data.")
	}
}

func Test_Address(t *testing.T) {
	sender := newSigner(t, 50)

	if _, err := ledger.ToAddress(string(sender.Address())); err != nil {
		t.Fatalf("Should be able to convert a valid address: %s", err)
	}

	if len(sender.Address()) != 66 {
		t.Fatalf("Should get a compressed public key, got %d characters.", len(sender.Address()))
	}

	if _, err := ledger.ToAddress("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"); err == nil {
		t.Fatalf("Should not be able to convert an invalid address.")
	}
}

// =============================================================================

func equal(a, b ledger.Transaction) bool {
	da, err := json.Marshal(a)
	if err != nil {
		return false
	}

	db, err := json.Marshal(b)
	if err != nil {
		return false
	}

	return string(da) == string(db)
}
