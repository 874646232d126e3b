package main

import "github.com/leaseledger/leaseledger/internal/cli"

func main() {
	cli.Execute()
}
