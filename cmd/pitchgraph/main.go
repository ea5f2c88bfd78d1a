// Package main is the entry point for the pitchgraph CLI.
package main

import (
	"os"

	"github.com/f3rmion/pitchgraph/cmd/pitchgraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
