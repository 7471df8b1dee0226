package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
)

// nodePool gives the wallet access to the pending pool of a node.
type nodePool struct {
	url string
	txs []ledger.Transaction
}

// newNodePool captures the pending transactions held by the node.
func newNodePool(url string) (*nodePool, error) {
	var txs []ledger.Transaction
	if err := get(url+"/api/transaction/get", &txs); err != nil {
		return nil, err
	}

	return &nodePool{url: url, txs: txs}, nil
}

// Check returns the pending transaction sent from the address.
func (p *nodePool) Check(address ledger.Address) (ledger.Transaction, bool) {
	for _, tx := range p.txs {
		if sender, ok := tx.Sender(); ok && sender == address {
			return tx, true
		}
	}

	return ledger.Transaction{}, false
}

// Upsert submits the signed transaction to the node.
func (p *nodePool) Upsert(tx ledger.Transaction) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := post(p.url+"/api/transaction/update", tx, &resp); err != nil {
		return err
	}

	if resp.Status != "accepted" {
		return fmt.Errorf("transaction %s by the node", resp.Status)
	}

	return nil
}

// =============================================================================

func get(url string, v any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decode(resp, v)
}

func post(url string, body any, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decode(resp, v)
}

func decode(resp *http.Response, v any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("%s: %s", resp.Status, msg)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
