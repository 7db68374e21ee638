package main

import (
	"os"

	"github.com/rustyeddy/pooltrader/cmd/pooltrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
