// Package commands implements the impgraph CLI's subcommands: a
// package-level RootCmd, one file per subcommand, and an Execute() entry
// point called from main.go.
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "impgraph",
	Short: "impgraph - static Python import-graph analysis",
	Long: `impgraph scans a set of Python packages, builds a static import
graph, and answers reachability and shortest-chain queries over it.

Commands:
  init        Interactive configuration wizard
  scan        Discover packages and scan their imports
  cache       Write or read a cached scan
  downstream  Modules that (transitively) import a module
  upstream    Modules a module (transitively) imports
  chain       Shortest import chain between two modules
  chains      All shortest import chains between two modules

Use "impgraph [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(scanCmd)
	RootCmd.AddCommand(cacheCmd)
	RootCmd.AddCommand(downstreamCmd)
	RootCmd.AddCommand(upstreamCmd)
	RootCmd.AddCommand(chainCmd)
	RootCmd.AddCommand(chainsCmd)
}
