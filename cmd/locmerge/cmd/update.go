package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carvoy/locmerge/internal/config"
	"github.com/carvoy/locmerge/pkg/geo"
	"github.com/carvoy/locmerge/pkg/logging"
	"github.com/carvoy/locmerge/pkg/suppliers"
	"github.com/carvoy/locmerge/pkg/suppliers/greenmotion"
	"github.com/carvoy/locmerge/pkg/suppliers/surprice"
	"github.com/carvoy/locmerge/pkg/unify"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch all supplier feeds and rebuild the unified catalog",
	Long: `Update fetches every supplier feed, reconciles the records into
unified locations and atomically replaces the catalog file. Supplier
failures reduce coverage but never abort the run; only a failure to
write the catalog exits non-zero.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringP("output", "o", config.DefaultOutputPath, "catalog output path")
	updateCmd.Flags().Duration("timeout", config.DefaultTimeout, "overall run deadline")
	updateCmd.Flags().Int("concurrency", config.DefaultConcurrency, "parallel supplier fetches")
	cobra.CheckErr(viper.BindPFlag("output", updateCmd.Flags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("timeout", updateCmd.Flags().Lookup("timeout")))
	cobra.CheckErr(viper.BindPFlag("concurrency", updateCmd.Flags().Lookup("concurrency")))

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry, err := defaultRegistry(cfg)
	if err != nil {
		return err
	}

	fallbacks, err := geo.LoadFallbacks()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	pipeline := unify.NewPipeline(registry, unify.NewEnricher(fallbacks), cfg.OutputPath,
		unify.WithConcurrency(cfg.Concurrency))

	summary, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	for supplier, count := range summary.SupplierCounts {
		logging.Debug().Str("supplier", supplier).Int("locations", count).Msg("Supplier contribution")
	}
	if len(summary.FailedSuppliers) > 0 {
		logging.Warn().
			Strs("suppliers", summary.FailedSuppliers).
			Msg("Catalog published with reduced coverage")
	}
	return nil
}

// defaultRegistry assembles the full collector roster. Registration order is
// the merge fold order: remote feeds first, static tables next, the internal
// location list last.
func defaultRegistry(cfg *config.Config) (*suppliers.Registry, error) {
	registry := suppliers.NewRegistry(
		greenmotion.New("greenmotion", cfg.GreenMotion.FleetID, feedOpts(cfg.GreenMotion)...),
		greenmotion.New("usave", cfg.USave.FleetID, feedOpts(cfg.USave)...),
		surprice.New(surpriceOpts(cfg.Surprice)...),
	)

	statics, err := suppliers.LoadStatic()
	if err != nil {
		return nil, err
	}
	for _, c := range statics {
		registry.Add(c)
	}

	internal, err := suppliers.LoadInternal()
	if err != nil {
		return nil, err
	}
	registry.Add(internal)

	return registry, nil
}

func feedOpts(feed config.Feed) []greenmotion.Option {
	if feed.BaseURL == "" {
		return nil
	}
	return []greenmotion.Option{greenmotion.WithBaseURL(feed.BaseURL)}
}

func surpriceOpts(feed config.Feed) []surprice.Option {
	if feed.BaseURL == "" {
		return nil
	}
	return []surprice.Option{surprice.WithBaseURL(feed.BaseURL)}
}
