package main

import (
	"os"

	"github.com/forgeapi/forgeapi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
