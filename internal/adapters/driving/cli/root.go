// Package cli provides the cobra command tree for catalog-mcp.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldfacts/catalog-mcp/internal/adapters/driven/algolia"
	"github.com/worldfacts/catalog-mcp/internal/adapters/driven/cache/sqlite"
	"github.com/worldfacts/catalog-mcp/internal/adapters/driven/datasette"
	"github.com/worldfacts/catalog-mcp/internal/adapters/driven/grapher"
	"github.com/worldfacts/catalog-mcp/internal/config"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driving"
	"github.com/worldfacts/catalog-mcp/internal/core/services"
	"github.com/worldfacts/catalog-mcp/internal/logger"
)

var version = "dev"

// Package-level services, wired in initServices and shared by the
// subcommands. Tests swap these for mocks.
var (
	chartService        driving.ChartService
	indicatorService    driving.IndicatorService
	postService         driving.PostService
	sqlService          driving.SQLService
	deepResearchService driving.DeepResearchService

	blobCache *sqlite.Cache
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "catalog-mcp",
	Short: "MCP server for a public data catalog",
	Long: `catalog-mcp exposes a public data catalog (charts, indicators,
articles and a read-only SQL endpoint) as Model Context Protocol tools
for AI assistants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if blobCache != nil {
			blobCache.Close() //nolint:errcheck
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command. The context is cancelled on shutdown
// signals and flows into long-running subcommands.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// initServices loads configuration and builds the driven adapters and
// core services. Already-set services (from tests) are left alone.
func initServices() error {
	if chartService != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	index := algolia.NewClient(algolia.Options{
		Host:            cfg.ResolvedSearchHost(),
		AppID:           cfg.AppID,
		APIKey:          cfg.SearchAPIKey,
		ChartsIndex:     cfg.ChartsIndex,
		PagesIndex:      cfg.PagesIndex,
		IndicatorsIndex: cfg.IndicatorsIndex,
		Timeout:         cfg.HTTPTimeout,
	})

	// The typed-nil *sqlite.Cache must not reach the interface field,
	// so the interface var is only assigned on success.
	var cache driven.BlobCache
	if cfg.CacheDir != "" {
		blobCache, err = sqlite.New(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			logger.Warn("download cache disabled: %v", err)
			blobCache = nil
		} else {
			cache = blobCache
		}
	}

	fetcher := grapher.NewClient(cfg.SiteURL, cfg.IndicatorAPIURL, cfg.HTTPTimeout, cache)
	gateway := datasette.NewClient(cfg.DatasetteURL, cfg.HTTPTimeout)
	regions := services.NewRegions()

	chartService = services.NewChartService(index, fetcher, regions, cfg.SiteURL)
	indicatorService = services.NewIndicatorService(index, fetcher, regions)
	postService = services.NewPostService(index, fetcher, cfg.SiteURL)
	sqlService = services.NewSQLService(gateway)
	deepResearchService = services.NewDeepResearchService(index, fetcher, regions, cfg.SiteURL)

	return nil
}
