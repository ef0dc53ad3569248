package commands

import (
	"github.com/spf13/cobra"
)

var upstreamCmd = &cobra.Command{
	Use:   "upstream <module>",
	Short: "Modules that module (transitively) imports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cachePath, _ := cmd.Flags().GetString("cache")
		asPackage, _ := cmd.Flags().GetBool("as-package")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		g, err := buildGraph(configPath, cachePath)
		if err != nil {
			return err
		}
		t, err := resolveToken(g, args[0])
		if err != nil {
			return err
		}

		upstream := g.FindUpstreamModules(t, asPackage)
		return printModuleSet(g, upstream, jsonOutput)
	},
}

func init() {
	upstreamCmd.Flags().String("config", "", "Config file path")
	upstreamCmd.Flags().String("cache", "", "Read a previously written cache instead of rescanning")
	upstreamCmd.Flags().Bool("as-package", false, "Expand module with its descendants before traversing")
	upstreamCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
