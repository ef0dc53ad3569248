// Package main implements the impgraph CLI, a static Python import-graph
// analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/ksoze/impgraph/cmd/impgraph/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "impgraph:", err)
		os.Exit(1)
	}
}
