// Package config provides configuration management for release-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags of
// every section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Catalog: product record and feed locations, recency window
//   - Server: HTTP server settings (port, API key)
//   - Database: optional run journal connection
//   - Storage: S3/MinIO credentials for s3:// feed locations
//   - Alerts: GitHub step output and Telegram delivery
//   - Schedule: cron spec for the schedule command
//   - Log: Logging level and format
//
// Command-line flags override the loaded values.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Catalog.ProductDir)
package config
