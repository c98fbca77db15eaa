// Package main provides the chisel CLI.
package main

import (
	"os"

	"github.com/chisellabs/chisel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
