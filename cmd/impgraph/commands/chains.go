package commands

import (
	"github.com/spf13/cobra"
)

var chainsCmd = &cobra.Command{
	Use:   "chains <from> <to>",
	Short: "All shortest import chains from one module to another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cachePath, _ := cmd.Flags().GetString("cache")
		asPackages, _ := cmd.Flags().GetBool("as-packages")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		g, err := buildGraph(configPath, cachePath)
		if err != nil {
			return err
		}
		from, err := resolveToken(g, args[0])
		if err != nil {
			return err
		}
		to, err := resolveToken(g, args[1])
		if err != nil {
			return err
		}

		chains := g.FindShortestChains(from, to, asPackages)
		return printChains(g, chains, jsonOutput)
	},
}

func init() {
	chainsCmd.Flags().String("config", "", "Config file path")
	chainsCmd.Flags().String("cache", "", "Read a previously written cache instead of rescanning")
	chainsCmd.Flags().Bool("as-packages", false, "Expand both endpoints with their descendants")
	chainsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
