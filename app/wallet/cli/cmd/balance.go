package cmd

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stecheiguess/crypto/foundation/blockchain/ledger"
	"github.com/stecheiguess/crypto/foundation/blockchain/wallet"
)

type balance struct {
	Address ledger.Address  `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	w, err := wallet.Load(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("For Address:", w.Address())

	var bal balance
	if err := get(fmt.Sprintf("%s/api/balance/%s", url, w.Address()), &bal); err != nil {
		log.Fatal(err)
	}

	fmt.Println(bal.Balance)
}
