package commands

import (
	"github.com/spf13/cobra"
)

var downstreamCmd = &cobra.Command{
	Use:   "downstream <module>",
	Short: "Modules that (transitively) import module",
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

		downstream := g.FindDownstreamModules(t, asPackage)
		return printModuleSet(g, downstream, jsonOutput)
	},
}

func init() {
	downstreamCmd.Flags().String("config", "", "Config file path")
	downstreamCmd.Flags().String("cache", "", "Read a previously written cache instead of rescanning")
	downstreamCmd.Flags().Bool("as-package", false, "Expand module with its descendants before traversing")
	downstreamCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
