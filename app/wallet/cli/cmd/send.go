package cmd

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stecheiguess/crypto/foundation/blockchain/chain"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/wallet"
)

var (
	to     string
	amount string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address of the receiver.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "0", "Amount to send.")
}

func sendRun(cmd *cobra.Command, args []string) {
	w, err := wallet.Load(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	receiver, err := ledger.ToAddress(to)
	if err != nil {
		log.Fatal(err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		log.Fatal(err)
	}

	var blocks []chain.Block
	if err := get(url+"/api/chain/get", &blocks); err != nil {
		log.Fatal(err)
	}

	pool, err := newNodePool(url)
	if err != nil {
		log.Fatal(err)
	}

	tx, err := w.Send(receiver, value, blocks, pool)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(tx)
}
