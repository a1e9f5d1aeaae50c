package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"release-sync/core/config"
	"release-sync/feature/updater"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	productDir  string
	dataDir     string
	verbose     bool
	dryRun      bool
	recencyDays int
)

// updateCmd reconciles product records with their observation feeds.
var updateCmd = &cobra.Command{
	Use:   "update [product]",
	Short: "Update product release cycles from observation feeds",
	Long: `Update the latest version and dates of every release cycle.

Products without a feed are skipped. A product that fails does not stop the
others. Recent versions that fit no release cycle are printed one per line as
"{product}:{version} ({date})".

Examples:
  # Update every product
  release-sync update -p products -d releases

  # Update a single product, verbosely
  release-sync update nodejs -p products -d releases -v

  # Show what would change
  release-sync update -p products -d s3://release-data/feeds --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&productDir, "product-dir", "p", "", "path to the product directory")
	updateCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "path to the release data directory or s3://bucket/prefix")
	updateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	updateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute changes without writing product records")
	updateCmd.Flags().IntVar(&recencyDays, "recency-days", 0, "report unmatched versions younger than this many days (default from config, 30)")
	_ = updateCmd.MarkFlagRequired("product-dir")
	_ = updateCmd.MarkFlagRequired("data-dir")

	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(func(cfg *config.Config) {
		cfg.Catalog.ProductDir = productDir
		cfg.Catalog.FeedDir = dataDir
		if cmd.Flags().Changed("dry-run") {
			cfg.Catalog.DryRun = dryRun
		}
		if cmd.Flags().Changed("recency-days") {
			cfg.Catalog.RecencyDays = recencyDays
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
	})
	if err != nil {
		return err
	}

	rt, err := setup(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := rt.updater.UpdateAll(ctx, args)
	if err != nil {
		// Listing the product directory failed or the run was interrupted.
		return err
	}

	if failed := run.Names(updater.StatusFailed); len(failed) > 0 {
		rt.logger.Warn("Some products could not be updated", zap.Strings("products", failed))
	}
	return nil
}
