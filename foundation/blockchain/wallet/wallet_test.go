package wallet_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/mempool"
	"github.com/stecheiguess/crypto/foundation/blockchain/wallet"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newWallet(t *testing.T) *wallet.Wallet {
	w, err := wallet.New()
	if err != nil {
		t.Fatalf("Should be able to construct a wallet: %s", err)
	}

	return w
}

// mine seals the valid pending transactions plus a reward for the miner.
func mine(t *testing.T, c *chain.Chain, pool *mempool.Pool, miner *wallet.Wallet) {
	txs := append(pool.Valid(nil), ledger.Reward(miner.Address()))

	data, err := ledger.EncodeBlockData(txs)
	if err != nil {
		t.Fatalf("Should be able to encode block data: %s", err)
	}

	c.Add(data)
	pool.Clear()
}

// =============================================================================

func Test_Send(t *testing.T) {
	t.Log("Given the need to send value and derive balances from the chain.")
	{
		c := chain.New(nil)
		pool := mempool.New()

		a := newWallet(t)
		b := newWallet(t)
		m := newWallet(t)

		t.Logf("\tTest 0:\tWhen sending 10 three times before mining.")
		{
			for i := 0; i < 3; i++ {
				if _, err := a.Send(b.Address(), decimal.NewFromInt(10), c.Blocks(), pool); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to send: %s", failed, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to send.", success)

			if pool.Count() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould amend a single pending transaction, got %d.", failed, pool.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould amend a single pending transaction.", success)

			tx, _ := pool.Check(a.Address())
			if len(tx.Outputs) != 4 || !tx.Conserves() {
				t.Fatalf("\t%s\tTest 0:\tShould conserve value across amendments: %+v", failed, tx.Outputs)
			}
			t.Logf("\t%s\tTest 0:\tShould conserve value across amendments.", success)

			mine(t, c, pool, m)

			if bal := a.CalculateBalance(c.Blocks()); !bal.Equal(decimal.NewFromInt(20)) {
				t.Fatalf("\t%s\tTest 0:\tShould derive 20 for the sender, got %s.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould derive 20 for the sender.", success)

			if bal := b.CalculateBalance(c.Blocks()); !bal.Equal(decimal.NewFromInt(80)) {
				t.Fatalf("\t%s\tTest 0:\tShould derive 80 for the receiver, got %s.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould derive 80 for the receiver.", success)

			if bal := m.CalculateBalance(c.Blocks()); !bal.Equal(decimal.NewFromInt(100)) {
				t.Fatalf("\t%s\tTest 0:\tShould derive 100 for the miner, got %s.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould derive 100 for the miner.", success)

			if !b.Balance().Equal(decimal.NewFromInt(80)) {
				t.Fatalf("\t%s\tTest 0:\tShould keep the derived balance on the wallet.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould keep the derived balance on the wallet.", success)
		}

		t.Logf("\tTest 1:\tWhen the receiver spends what it was paid.")
		{
			// Input timestamps have second resolution.
			time.Sleep(1100 * time.Millisecond)

			if _, err := b.Send(a.Address(), decimal.NewFromInt(70), c.Blocks(), pool); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to send: %s", failed, err)
			}

			mine(t, c, pool, b)

			if bal := b.CalculateBalance(c.Blocks()); !bal.Equal(decimal.NewFromInt(60)) {
				t.Fatalf("\t%s\tTest 1:\tShould derive the change plus the reward, got %s.", failed, bal)
			}
			t.Logf("\t%s\tTest 1:\tShould derive the change plus the reward.", success)

			if bal := a.CalculateBalance(c.Blocks()); !bal.Equal(decimal.NewFromInt(90)) {
				t.Fatalf("\t%s\tTest 1:\tShould derive 90 for the original sender, got %s.", failed, bal)
			}
			t.Logf("\t%s\tTest 1:\tShould derive 90 for the original sender.", success)
		}
	}
}

func Test_Overspend(t *testing.T) {
	t.Log("Given the need to reject sending more than the balance.")
	{
		c := chain.New(nil)
		pool := mempool.New()

		a := newWallet(t)
		b := newWallet(t)

		_, err := a.Send(b.Address(), decimal.NewFromInt(60), c.Blocks(), pool)

		var ae *ledger.AmountError
		if !errors.As(err, &ae) {
			t.Fatalf("\t%s\tShould get an amount error: %v", failed, err)
		}
		t.Logf("\t%s\tShould get an amount error.", success)

		if pool.Count() != 0 {
			t.Fatalf("\t%s\tShould leave the pool empty.", failed)
		}
		t.Logf("\t%s\tShould leave the pool empty.", success)

		if c.Len() != 1 {
			t.Fatalf("\t%s\tShould leave the chain untouched.", failed)
		}
		t.Logf("\t%s\tShould leave the chain untouched.", success)

		if _, err := a.Send(b.Address(), decimal.NewFromInt(40), c.Blocks(), pool); err != nil {
			t.Fatalf("\t%s\tShould be able to send: %s", failed, err)
		}

		_, err = a.Send(b.Address(), decimal.NewFromInt(20), c.Blocks(), pool)
		if !errors.As(err, &ae) {
			t.Fatalf("\t%s\tShould get an amount error past the pending change: %v", failed, err)
		}
		t.Logf("\t%s\tShould get an amount error past the pending change.", success)

		tx, _ := pool.Check(a.Address())
		if len(tx.Outputs) != 2 {
			t.Fatalf("\t%s\tShould leave the pending transaction unchanged.", failed)
		}
		t.Logf("\t%s\tShould leave the pending transaction unchanged.", success)
	}
}

func Test_AmendAfterPayment(t *testing.T) {
	t.Log("Given the need to amend a pending transaction after the wallet was paid.")
	{
		c := chain.New(nil)
		pendingA := mempool.New()
		pendingB := mempool.New()

		a := newWallet(t)
		b := newWallet(t)
		m := newWallet(t)

		if _, err := a.Send(b.Address(), decimal.NewFromInt(10), c.Blocks(), pendingA); err != nil {
			t.Fatalf("\t%s\tShould be able to send: %s", failed, err)
		}

		if _, err := b.Send(a.Address(), decimal.NewFromInt(20), c.Blocks(), pendingB); err != nil {
			t.Fatalf("\t%s\tShould be able to send: %s", failed, err)
		}
		mine(t, c, pendingB, m)

		tx, err := a.Send(b.Address(), decimal.NewFromInt(5), c.Blocks(), pendingA)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to amend the pending transaction: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to amend the pending transaction.", success)

		if !tx.Conserves() || !tx.Input.Amount.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("\t%s\tShould keep the outputs summing to the input, input %s: total %s.", failed, tx.Input.Amount, tx.Total())
		}
		t.Logf("\t%s\tShould keep the outputs summing to the input.", success)

		if txs := pendingA.Valid(nil); len(txs) != 1 || len(txs[0].Outputs) != 3 {
			t.Fatalf("\t%s\tShould keep the amended transaction minable, got %d.", failed, len(txs))
		}
		t.Logf("\t%s\tShould keep the amended transaction minable.", success)
	}
}

func Test_BalanceOf(t *testing.T) {
	a := newWallet(t)

	blocks := []chain.Block{
		chain.Genesis(),
		{Height: 1, Data: "not transactions"},
	}

	if bal := wallet.BalanceOf(a.Address(), blocks); !bal.Equal(wallet.InitialBalance) {
		t.Fatalf("Should start at the initial balance, got %s.", bal)
	}

	if bal := wallet.BalanceOf(a.Address(), nil); !bal.Equal(wallet.InitialBalance) {
		t.Fatalf("Should start at the initial balance with no blocks, got %s.", bal)
	}
}

func Test_KeyFile(t *testing.T) {
	w := newWallet(t)
	path := filepath.Join(t.TempDir(), "node.ecdsa")

	if err := w.Save(path); err != nil {
		t.Fatalf("Should be able to save the key: %s", err)
	}

	loaded, err := wallet.Load(path)
	if err != nil {
		t.Fatalf("Should be able to load the key: %s", err)
	}

	if loaded.Address() != w.Address() {
		t.Fatalf("Should get back the same address.")
	}

	if _, err := wallet.Load(filepath.Join(t.TempDir(), "missing.ecdsa")); err == nil {
		t.Fatalf("Should not be able to load a missing key.")
	}
}
