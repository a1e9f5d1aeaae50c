package updater

import "time"

// Config holds the locations and policy of an update run.
type Config struct {
	// ProductDir holds one <product>.md record per product.
	ProductDir string `mapstructure:"product_dir" default:"products"`
	// FeedDir holds one <product>.json feed per product, or is an s3://bucket/prefix URL.
	FeedDir string `mapstructure:"feed_dir" default:"releases"`
	// RecencyDays is the age below which unmatched observations are reported.
	RecencyDays int `mapstructure:"recency_days" default:"30"`
	// DryRun computes changes without writing product records.
	DryRun bool `mapstructure:"dry_run" default:"false"`
}

// RecencyWindow converts RecencyDays to a duration. Non-positive values use the default.
func (c Config) RecencyWindow() time.Duration {
	if c.RecencyDays <= 0 {
		return 0
	}
	return time.Duration(c.RecencyDays) * 24 * time.Hour
}
