package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/pkg/cache"
)

// cacheCmd groups the write/read cache round-trip subcommands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Write or read a cached scan",
}

var cacheWriteCmd = &cobra.Command{
	Use:   "write <path>",
	Short: "Run a fresh scan and write it to the cache file at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		imports, err := discoverAndScan(cfg)
		if err != nil {
			return err
		}
		if err := cache.Write(fsys.NewReal(), args[0], imports); err != nil {
			return fmt.Errorf("writing cache: %w", err)
		}
		fmt.Printf("wrote cache to %s\n", args[0])
		return nil
	},
}

var cacheReadCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Read and pretty-print a cache file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imports, err := cache.Read(fsys.NewReal(), args[0])
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}

		out := make(map[string][]map[string]any, len(imports))
		for module, set := range imports {
			entries := make([]map[string]any, 0, len(set))
			for imp := range set {
				entries = append(entries, map[string]any{
					"imported":      imp.Imported,
					"line_number":   imp.LineNumber,
					"line_contents": imp.LineContents,
				})
			}
			out[module.Name] = entries
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	cacheWriteCmd.Flags().String("config", "", "Config file path (defaults to ~/.impgraph/config.yaml)")
	cacheCmd.AddCommand(cacheWriteCmd)
	cacheCmd.AddCommand(cacheReadCmd)
}
