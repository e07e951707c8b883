// Package main provides the jlq command line for the full-context label
// question engine.
package main

import (
	"os"

	"github.com/leapstack-labs/jlabel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
