package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ksoze/impgraph/internal/config"
	"github.com/ksoze/impgraph/internal/discovery"
	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/internal/log"
	"github.com/ksoze/impgraph/internal/pyimport"
	"github.com/ksoze/impgraph/internal/scan"
	"github.com/ksoze/impgraph/pkg/cache"
	"github.com/ksoze/impgraph/pkg/domain"
	"github.com/ksoze/impgraph/pkg/graph"
)

// loadConfig loads the config file named by --config, falling back to the
// default search path.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// discoverAndScan runs the full discover-then-scan pipeline from a loaded
// config, returning the resulting ImportsByModule.
func discoverAndScan(cfg *config.Config) (domain.ImportsByModule, error) {
	fs := fsys.NewReal()
	logger := log.Default()

	roots := make([]discovery.Root, len(cfg.RootPackages))
	for i, name := range cfg.RootPackages {
		roots[i] = discovery.Root{Name: name, Dir: cfg.RootDirs[i]}
	}

	logger.Info("discovering packages", "roots", len(roots))
	foundPackages, err := discovery.Discover(fs, roots, discovery.Options{IgnoreFileName: cfg.IgnoreFileName})
	if err != nil {
		return nil, fmt.Errorf("discovering packages: %w", err)
	}
	logger.Info("packages discovered", "count", len(foundPackages))

	parser := pyimport.New()
	imports, err := scan.Scan(fs, parser, foundPackages, scan.Options{
		IncludeExternalPackages:    cfg.IncludeExternalPackages,
		ExcludeTypeCheckingImports: cfg.ExcludeTypeCheckingImports,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning imports: %w", err)
	}
	logger.Info("scan complete", "modules", len(imports))

	return imports, nil
}

// loadImports either reads a cache file (if cachePath is non-empty and
// exists) or runs discoverAndScan against the loaded config.
func loadImports(cfg *config.Config, cachePath string) (domain.ImportsByModule, error) {
	if cachePath != "" {
		fs := fsys.NewReal()
		if fs.Exists(cachePath) {
			return cache.Read(fs, cachePath)
		}
	}
	return discoverAndScan(cfg)
}

// buildGraph loads imports (from cache or a fresh scan) and builds a
// pkg/graph.Graph from them.
func buildGraph(configPath, cachePath string) (*graph.Graph, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	imports, err := loadImports(cfg, cachePath)
	if err != nil {
		return nil, err
	}
	return graph.Build(imports), nil
}

// resolveToken looks up a module name's token, failing loudly (rather than
// silently scoping a query to nothing) if the name was never discovered.
func resolveToken(g *graph.Graph, name string) (graph.ModuleToken, error) {
	t, ok := g.Token(name)
	if !ok {
		return 0, fmt.Errorf("module %q was not found in the scanned graph", name)
	}
	return t, nil
}

// moduleNames resolves a token set to sorted dotted names.
func moduleNames(g *graph.Graph, tokens map[graph.ModuleToken]struct{}) []string {
	names := make([]string, 0, len(tokens))
	for t := range tokens {
		names = append(names, g.Name(t))
	}
	sort.Strings(names)
	return names
}

// printModuleSet prints a set of modules, either as a JSON array or one
// name per line.
func printModuleSet(g *graph.Graph, tokens map[graph.ModuleToken]struct{}, jsonOutput bool) error {
	names := moduleNames(g, tokens)
	if jsonOutput {
		data, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// printChain prints a single chain (nil meaning "no chain found"), either
// as JSON or as an arrow-joined line.
func printChain(g *graph.Graph, chain []graph.ModuleToken, jsonOutput bool) error {
	var names []string
	for _, t := range chain {
		names = append(names, g.Name(t))
	}

	if jsonOutput {
		data, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(names) == 0 {
		fmt.Println("no chain found")
		return nil
	}
	for i, name := range names {
		if i > 0 {
			fmt.Print(" -> ")
		}
		fmt.Print(name)
	}
	fmt.Println()
	return nil
}

// printChains prints every chain from the all-shortest-chains query.
func printChains(g *graph.Graph, chains [][]graph.ModuleToken, jsonOutput bool) error {
	if jsonOutput {
		out := make([][]string, len(chains))
		for i, chain := range chains {
			names := make([]string, len(chain))
			for j, t := range chain {
				names[j] = g.Name(t)
			}
			out[i] = names
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(chains) == 0 {
		fmt.Println("no chains found")
		return nil
	}
	for _, chain := range chains {
		if err := printChain(g, chain, false); err != nil {
			return err
		}
	}
	return nil
}

