package main

import "github.com/stecheiguess/crypto/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
