package main

import (
	"os"

	"github.com/kurakampus/kurakampus-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
