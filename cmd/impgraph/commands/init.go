package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ksoze/impgraph/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize impgraph configuration",
	Long: `Guides you through setting up impgraph configuration step by step.
Creates a config file naming the root packages to scan and where to find them.

Use non-interactive mode with flags:
  impgraph init --packages mypkg,mypkg.sub --dirs ./src/mypkg,./src/mypkg/sub

For full flag list, run: impgraph init --help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func runInit(cmd *cobra.Command) error {
	packagesFlag, _ := cmd.Flags().GetString("packages")
	dirsFlag, _ := cmd.Flags().GetString("dirs")
	includeExternalFlag, _ := cmd.Flags().GetBool("include-external")
	excludeTypeCheckingFlag, _ := cmd.Flags().GetBool("exclude-type-checking")
	cachePathFlag, _ := cmd.Flags().GetString("cache-path")
	locationFlag, _ := cmd.Flags().GetString("location")

	isNonInteractive := packagesFlag != "" || dirsFlag != ""

	if isNonInteractive {
		return runInitNonInteractive(packagesFlag, dirsFlag, includeExternalFlag, excludeTypeCheckingFlag, cachePathFlag, locationFlag)
	}

	// === INTERACTIVE MODE ===
	var packagesInput string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Root packages - comma-separated dotted package names to scan").
				Description("e.g. myapp,myapp.api").
				Placeholder("myapp").
				Value(&packagesInput),
		),
	)
	err := form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	packages := splitCommaList(packagesInput)
	dirs := make([]string, len(packages))
	for i, pkg := range packages {
		defaultDir := strings.ReplaceAll(pkg, ".", "/")
		dirs[i] = defaultDir
		var dirInput string
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Directory for package %q", pkg)).
					Placeholder(defaultDir).
					Value(&dirInput),
			),
		)
		err = form.Run()
		if err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
		if dirInput != "" {
			dirs[i] = dirInput
		}
	}

	var includeExternal bool
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Include external packages").
				Description("Record imports of third-party packages as well as internal ones?").
				Affirmative("Yes").
				Negative("No").
				Value(&includeExternal),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var excludeTypeChecking bool
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Exclude TYPE_CHECKING-guarded imports").
				Description("Skip imports that only run under typing.TYPE_CHECKING?").
				Affirmative("Exclude").
				Negative("Keep").
				Value(&excludeTypeChecking),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	cachePath := ".impgraph-cache.json"
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cache file path").
				Placeholder(cachePath).
				Value(&cachePath),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	if cachePath == "" {
		cachePath = ".impgraph-cache.json"
	}

	configPath := config.DefaultConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Config file exists").
					Description(fmt.Sprintf("Overwrite existing config at %s?", configPath)).
					Affirmative("Overwrite").
					Negative("Cancel").
					Value(&overwrite),
			),
		)
		err = form.Run()
		if err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.RootPackages = packages
	cfg.RootDirs = dirs
	cfg.IncludeExternalPackages = includeExternal
	cfg.ExcludeTypeCheckingImports = excludeTypeChecking
	cfg.CachePath = cachePath

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	printConfigPreview(configPath, cfg)

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\n=== Initialization Complete ===")
	return nil
}

func runInitNonInteractive(packagesFlag, dirsFlag string, includeExternal, excludeTypeChecking bool, cachePathFlag, locationFlag string) error {
	if locationFlag != "" {
		return fmt.Errorf("global config location is no longer supported; config is always saved to %s", config.DefaultConfigPath())
	}

	packages := splitCommaList(packagesFlag)
	if len(packages) == 0 {
		return fmt.Errorf("--packages is required in non-interactive mode")
	}
	dirs := splitCommaList(dirsFlag)
	if len(dirs) == 0 {
		dirs = make([]string, len(packages))
		for i, pkg := range packages {
			dirs[i] = strings.ReplaceAll(pkg, ".", "/")
		}
	}

	cachePath := cachePathFlag
	if cachePath == "" {
		cachePath = ".impgraph-cache.json"
	}

	cfg := config.DefaultConfig()
	cfg.RootPackages = packages
	cfg.RootDirs = dirs
	cfg.IncludeExternalPackages = includeExternal
	cfg.ExcludeTypeCheckingImports = excludeTypeChecking
	cfg.CachePath = cachePath

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	configPath := config.DefaultConfigPath()
	printConfigPreview(configPath, cfg)

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\n=== Initialization Complete ===")
	return nil
}

func printConfigPreview(configPath string, cfg *config.Config) {
	fmt.Println("\n=== Configuration Preview ===")
	fmt.Printf("Config path: %s\n", configPath)
	fmt.Printf("Root packages: %s\n", strings.Join(cfg.RootPackages, ", "))
	fmt.Printf("Root dirs: %s\n", strings.Join(cfg.RootDirs, ", "))
	fmt.Printf("Include external packages: %v\n", cfg.IncludeExternalPackages)
	fmt.Printf("Exclude TYPE_CHECKING imports: %v\n", cfg.ExcludeTypeCheckingImports)
	fmt.Printf("Cache path: %s\n", cfg.CachePath)
	fmt.Println("================================")
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	initCmd.Flags().String("packages", "", "Comma-separated root package names (non-interactive mode)")
	initCmd.Flags().String("dirs", "", "Comma-separated root package directories, aligned with --packages")
	initCmd.Flags().Bool("include-external", true, "Record imports of external packages")
	initCmd.Flags().Bool("exclude-type-checking", false, "Exclude TYPE_CHECKING-guarded imports")
	initCmd.Flags().String("cache-path", "", "Cache file path")
	initCmd.Flags().String("location", "", "No longer supported (passing it is an error): config is always saved to the default path")
}
