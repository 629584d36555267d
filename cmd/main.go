package main

import (
	"os"

	"github.com/averonne/chainsight/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
