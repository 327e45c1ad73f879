package main

import (
	"fmt"
	"os"

	"hyeonwoo/receipt-ledger/cmd/root"
	"hyeonwoo/receipt-ledger/cmd/scan"
	"hyeonwoo/receipt-ledger/cmd/serve"
	"hyeonwoo/receipt-ledger/cmd/version"
)

func init() {
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(version.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
