package main

import (
	"os"

	"github.com/quantmill/backsim/cmd/backsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
