// Package database handles the optional run journal connection and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL or SQLite connections based on the application's configuration.
//
// # Connect
//
// Connect establishes a connection with the configured driver and verifies it
// with a ping bounded by the configured timeout.
//
// # Schema Inspection
//
// When automatic migration is disabled the journal tables are managed by
// someone else. GetTableColumns and MissingColumns let the journal verify
// that the expected columns exist before writing.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Journal disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "cycle_changes", []string{"run_id"})
package database
