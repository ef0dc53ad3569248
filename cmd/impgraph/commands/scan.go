package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/pkg/cache"
	"github.com/ksoze/impgraph/pkg/domain"
)

// scanCmd discovers packages and scans them for imports, following
// cmd/gcq/commands/tree.go's --json flag convention.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover packages and scan their imports",
	Long:  `Discovers packages under the configured root packages, scans them for imports, and prints a summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		writeCache, _ := cmd.Flags().GetString("cache")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		imports, err := discoverAndScan(cfg)
		if err != nil {
			return err
		}

		if writeCache != "" {
			if err := cache.Write(fsys.NewReal(), writeCache, imports); err != nil {
				return fmt.Errorf("writing cache: %w", err)
			}
		}

		if jsonOutput {
			return printScanSummaryJSON(imports)
		}
		printScanSummaryText(imports)
		return nil
	},
}

func init() {
	scanCmd.Flags().String("config", "", "Config file path (defaults to ~/.impgraph/config.yaml)")
	scanCmd.Flags().String("cache", "", "Write the resulting scan to this cache file")
	scanCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

type scanSummary struct {
	ModuleCount int `json:"module_count"`
	ImportCount int `json:"import_count"`
}

func summarize(imports domain.ImportsByModule) scanSummary {
	total := 0
	for _, set := range imports {
		total += len(set)
	}
	return scanSummary{ModuleCount: len(imports), ImportCount: total}
}

func printScanSummaryJSON(imports domain.ImportsByModule) error {
	data, err := json.MarshalIndent(summarize(imports), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printScanSummaryText(imports domain.ImportsByModule) {
	s := summarize(imports)
	fmt.Printf("modules scanned: %d\n", s.ModuleCount)
	fmt.Printf("imports found:   %d\n", s.ImportCount)
}
