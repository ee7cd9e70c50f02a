package main

import (
	"os"

	"github.com/chatlens/relationship-analyzer/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
