package cmd

import (
	"encoding/json"
	"fmt"

	"release-sync/core/config"
	"release-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jsonOutput bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check product records and feed coverage",
	Long: `Parses every product record, compares records with available feeds and,
when the journal is enabled, verifies its schema. Exits non-zero when a record
is invalid or a feed has no product record.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(func(cfg *config.Config) {
			if productDir != "" {
				cfg.Catalog.ProductDir = productDir
			}
			if dataDir != "" {
				cfg.Catalog.FeedDir = dataDir
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

		svc := integrity.NewService(cfg.Catalog.ProductDir, rt.source, rt.db, rt.logger)
		report := svc.CheckAll(cmd.Context())

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			logIntegrityReport(rt.logger, report)
		}

		if !report.Healthy() {
			return fmt.Errorf("integrity check found problems")
		}
		return nil
	},
}

func logIntegrityReport(l *zap.Logger, report *integrity.Report) {
	if r := report.Records; r != nil {
		l.Info("Product records", zap.Int("products", r.Products), zap.Int("cycles", r.Cycles), zap.Int("invalid", len(r.Invalid)))
		for _, issue := range r.Invalid {
			l.Warn("Invalid product record", zap.String("product", issue.Product), zap.String("error", issue.Error))
		}
	}
	if f := report.Feeds; f != nil {
		l.Info("Feed coverage",
			zap.String("location", f.Location),
			zap.Int("with_feed", f.WithFeed),
			zap.Int("without_feed", len(f.WithoutFeed)),
			zap.Strings("orphans", f.Orphans))
	}
	l.Info("Journal", zap.String("status", report.Journal.Status), zap.String("error", report.Journal.Error))
}

func init() {
	integrityCmd.Flags().StringVarP(&productDir, "product-dir", "p", "", "path to the product directory (default from config)")
	integrityCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "path to the release data directory or s3://bucket/prefix (default from config)")
	integrityCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")

	RootCmd.AddCommand(integrityCmd)
}
